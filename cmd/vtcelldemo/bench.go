package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kimaguri/vtcell/internal/vtcellcfg"
	"github.com/kimaguri/vtcell/vt"
)

// newBenchCmd wires the "bench" subcommand: feed an input file through the
// engine once for Render (full relative frame) and once for RenderSince
// (differential rewrite since the previous checkpoint), reporting the byte
// count each strategy produces so the two rendering paths' payoff is
// visible without attaching a terminal.
func newBenchCmd() *cobra.Command {
	var inputPath string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "compare full-frame vs differential render output size for a VT byte stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := vtcellcfg.Load(configPathFlag)
			if err != nil {
				return err
			}
			return runBench(cfg, inputPath)
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "file of raw VT bytes to feed the engine (required)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func runBench(cfg vtcellcfg.Config, inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	full := vt.New(cfg.Width, cfg.Height, vt.WithRowCap(cfg.RowCap))
	full.Write(data)
	fullFrame := full.Render()

	diff := vt.New(cfg.Width, cfg.Height, vt.WithRowCap(cfg.RowCap))
	// Split the stream roughly in half to give RenderSince something to
	// checkpoint against before the second half arrives.
	mid := len(data) / 2
	diff.Write(data[:mid])
	diff.Render()
	seq := diff.LastRenderedSeq()
	diff.Write(data[mid:])
	diffFrame := diff.RenderSince(seq)

	fmt.Fprintf(os.Stdout, "input bytes:      %d\n", len(data))
	fmt.Fprintf(os.Stdout, "full render:       %d bytes\n", len(fullFrame))
	fmt.Fprintf(os.Stdout, "differential (2nd half): %d bytes\n", len(diffFrame))
	return nil
}
