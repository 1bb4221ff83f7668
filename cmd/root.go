package cmd

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tutils/krull"
	"github.com/tutils/krull/krull128"
	"github.com/tutils/krull/krull64"
	"github.com/tutils/krull/lcg"
)

var (
	cfgFile string

	// Shared flags
	variant      string
	seedMaterial string
	streamID     uint64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "krull",
	Short: "Deterministic simulation RNG tools.",
	Long: `Deterministic simulation RNG tools.
Repo: https://github.com/tutils/krull
Generate reproducible random streams, reposition inside them without
replay, and serve them over HTTP, For example:
  krull stream --seed=workload-7 --count=1048576 > block.bin
  krull state --seed=workload-7 --jump=-1000000 --out=state.bin
  krull serve --listen=0.0.0.0:8080 --seed=workload-7`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.krull.yaml)")
	flags.StringVarP(&variant, "variant", "v", "64", `generator variant: "64" (192-bit state) or "128" (256-bit state)`)
	flags.StringVarP(&seedMaterial, "seed", "s", "", "seed material, arbitrary text (empty is valid)")
	flags.Uint64VarP(&streamID, "stream", "n", 0, "explicit stream selector")
	viper.BindPFlag("variant", flags.Lookup("variant"))
	viper.BindPFlag("seed", flags.Lookup("seed"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".krull" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".krull")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// newSource builds a generator from the shared flags. An explicitly
// given --stream pins the selector and the seed material only chooses
// the position; otherwise the material seeds the whole state.
func newSource(cmd *cobra.Command) krull.Source {
	material := []byte(viper.GetString("seed"))
	streamSet := cmd.Flags().Changed("stream")
	switch viper.GetString("variant") {
	case "128":
		if streamSet {
			return krull128.FromBytesStream(material, lcg.From64(streamID))
		}
		return krull128.FromBytes(material)
	default:
		if streamSet {
			return krull64.FromBytesStream(material, streamID)
		}
		return krull64.FromBytes(material)
	}
}
