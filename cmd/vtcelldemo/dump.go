package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kimaguri/vtcell/internal/snapshot"
	"github.com/kimaguri/vtcell/internal/vtcellcfg"
	"github.com/kimaguri/vtcell/vt"
)

// newDumpCmd wires the "dump" subcommand: feed a script of raw VT bytes
// (or stdin) through a fresh engine and persist the resulting viewport as
// a TOML snapshot, exercising internal/snapshot outside a live PTY.
func newDumpCmd() *cobra.Command {
	var inputPath string
	cmd := &cobra.Command{
		Use:   "dump <snapshot-file>",
		Short: "render a byte stream through the engine and write the resulting viewport as a TOML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := vtcellcfg.Load(configPathFlag)
			if err != nil {
				return err
			}
			return dumpSnapshot(cfg, inputPath, args[0])
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "file of raw VT bytes to feed the engine (default: stdin)")
	return cmd
}

func dumpSnapshot(cfg vtcellcfg.Config, inputPath, outPath string) error {
	var data []byte
	var err error
	if inputPath == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	engine := vt.New(cfg.Width, cfg.Height, vt.WithRowCap(cfg.RowCap))
	engine.Write(data)

	snap := snapshot.FromCellBuffer(engine.Snapshot())
	if err := snapshot.Save(outPath, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s (%dx%d)\n", outPath, snap.Width, snap.Height)
	return nil
}
