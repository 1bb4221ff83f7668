package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tutils/krull"
	"github.com/tutils/krull/counter/period"
	"github.com/tutils/krull/krull128"
	"github.com/tutils/krull/krull64"
	"github.com/tutils/krull/lcg"
	"github.com/tutils/krull/randsrv"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generator output over HTTP",
	Long: `Start the random service: JSON draws, raw byte blocks and an endless
websocket stream, all derived from one seed, For example:
  krull serve --listen=0.0.0.0:8080 --seed=workload-7
  curl 'http://127.0.0.1:8080/api/draw?n=4'
  curl 'http://127.0.0.1:8080/api/bytes?n=1024' --output block.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		newer := randsrv.SourceNewer(func(material []byte, stream uint64) krull.Source {
			return krull64.FromBytesStream(material, stream)
		})
		if viper.GetString("variant") == "128" {
			newer = func(material []byte, stream uint64) krull.Source {
				return krull128.FromBytesStream(material, lcg.From64(stream))
			}
		}

		s := randsrv.NewServer(
			randsrv.WithListenAddress(serveListenAddress),
			randsrv.WithSeedMaterial([]byte(viper.GetString("seed"))),
			randsrv.WithSourceNewer(newer),
			randsrv.WithBytesCounter(period.NewPeriodCounter(time.Second)),
		)
		return s.ListenAndServe()
	},
}

var (
	serveListenAddress string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.StringVarP(&serveListenAddress, "listen", "l", "0.0.0.0:8080", "http server listen address")
}
