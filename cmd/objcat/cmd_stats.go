package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"objcat/cmd/objcat/catalog"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"
)

var flagStatsJSON bool

// buildStats is the catalog summary plus what the build cost this process.
type buildStats struct {
	catalog.Stats
	Duration time.Duration `json:"duration_ns"`
	RSS      uint64        `json:"rss_bytes"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog counts and the memory used to build it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		c, err := load()
		if err != nil {
			return err
		}
		st := buildStats{Stats: c.Stats(), Duration: time.Since(start)}
		if st.RSS, err = residentMemory(); err != nil {
			logger.Printf("memory info unavailable: %v", err)
		}
		if flagStatsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		printStats(cmd.OutOrStdout(), st)
		return nil
	},
}

// residentMemory returns the resident set size of this process.
func residentMemory() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

func printStats(w io.Writer, st buildStats) {
	fmt.Fprintf(w, "objects         %d\n", st.Objects)
	fmt.Fprintf(w, "  characters    %d\n", st.Characters)
	fmt.Fprintf(w, "views           %d\n", st.Views)
	fmt.Fprintf(w, "  extended      %d\n", st.ExtendedViews)
	fmt.Fprintf(w, "frames          %d\n", st.Frames)
	fmt.Fprintf(w, "build time      %s\n", st.Duration.Round(time.Microsecond))
	if st.RSS > 0 {
		fmt.Fprintf(w, "resident memory %s\n", humanize.IBytes(st.RSS))
	}
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsJSON, "json", false, "print the numbers as JSON")
}
