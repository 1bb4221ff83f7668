package cmd

import (
	"bufio"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tutils/krull"
	"github.com/tutils/krull/counter/period"
)

// streamCmd represents the stream command
var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Write generator output bytes to stdout",
	Long: `Write the raw byte stream of a seeded generator to stdout, For example:
  krull stream --seed=workload-7 --count=1048576 > block.bin
  krull stream --seed=workload-7 --report=1s | practrand stdin64`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := newSource(cmd)
		rd := krull.NewReader(src)
		w := bufio.NewWriterSize(os.Stdout, 64<<10)
		defer w.Flush()

		c := period.NewPeriodCounter(time.Second)
		if reportInterval > 0 {
			done := make(chan struct{})
			defer close(done)
			go func() {
				ticker := time.NewTicker(reportInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						log.Printf("[INFO] %d bytes written, %d B/s", c.Value(), c.RatePerSec())
					case <-done:
						return
					}
				}
			}()
		}

		buf := make([]byte, streamChunkSize)
		var written int64
		for countBytes == 0 || written < countBytes {
			n := int64(len(buf))
			if countBytes > 0 && countBytes-written < n {
				n = countBytes - written
			}
			rd.Read(buf[:n])
			if _, err := w.Write(buf[:n]); err != nil {
				return errors.Wrap(err, "write output")
			}
			written += n
			c.Add(n)
		}
		return nil
	},
}

var (
	countBytes      int64
	streamChunkSize int
	reportInterval  time.Duration
)

func init() {
	rootCmd.AddCommand(streamCmd)

	flags := streamCmd.Flags()
	flags.Int64VarP(&countBytes, "count", "c", 0, "bytes to write, 0 for an endless stream")
	flags.IntVarP(&streamChunkSize, "chunk", "", 64<<10, "write chunk size in bytes")
	flags.DurationVarP(&reportInterval, "report", "r", 0, "throughput report interval on stderr, 0 to disable")
}
