package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tutils/krull/crypt/xor"
)

// cryptCmd represents the crypt command
var cryptCmd = &cobra.Command{
	Use:   "crypt",
	Short: "XOR keystream filter from stdin to stdout",
	Long: `Filter stdin through the xor keystream cipher keyed by seed material.
The operation is symmetric: running it twice with the same key restores
the input, For example:
  krull crypt --key=816559 < plain.bin > masked.bin
  krull crypt --key=816559 < masked.bin > plain.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := xor.NewCrypt([]byte(cryptKey))
		en := c.NewEncoder(os.Stdout)
		if _, err := io.Copy(en, os.Stdin); err != nil {
			return errors.Wrap(err, "crypt stream")
		}
		return nil
	},
}

var (
	cryptKey string
)

func init() {
	rootCmd.AddCommand(cryptCmd)

	flags := cryptCmd.Flags()
	flags.StringVarP(&cryptKey, "key", "k", "", "key material for the keystream generator")
}
