package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/setanarut/bgremove"
	"github.com/setanarut/bgremove/internal/logger"
)

// acquireImaging is swapped in tests to simulate a missing image capability.
var acquireImaging = bgremove.Acquire

type globalFlags struct {
	debug  bool
	config string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var cleanup func()

	cmd := &cobra.Command{
		Use:           "bgremove",
		Short:         "Make the background of a PNG transparent using per-pixel color heuristics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cleanup = logger.Setup(logger.Config{Debug: g.debug, Output: cmd.ErrOrStderr()})
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "write structured debug logs to stderr")
	cmd.PersistentFlags().StringVarP(&g.config, "config", "c", "", "YAML run configuration (flags override it)")

	cmd.AddCommand(removeCmd(g), inspectCmd(g), variantsCmd(g))
	return cmd
}
