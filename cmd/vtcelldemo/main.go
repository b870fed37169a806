// Command vtcelldemo is a reference host application for the vtcell
// engine: it feeds a subprocess's PTY output through vt.Engine and
// repaints a bubbletea pane with the resulting frames, exercising the
// full parse -> engine -> render pipeline the way a terminal multiplexer
// or session recorder would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/rs/zerolog"

	"github.com/kimaguri/vtcell/internal/vtlog"
)

var (
	configPathFlag string
	verboseFlag    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vtcelldemo",
		Short: "drive the vtcell engine against a real subprocess or byte stream",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verboseFlag {
				vtlog.SetLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to config TOML (default: ~/.config/vtcell/config.toml)")
	root.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable debug logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
