package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/setanarut/bgremove"
	"github.com/setanarut/bgremove/internal/config"
)

type runFlags struct {
	input   string
	output  string
	variant string
	opts    bgremove.Options
}

func addThresholdFlags(fs *pflag.FlagSet, o *bgremove.Options) {
	d := bgremove.DefaultOptions()
	fs.IntVar(&o.Tolerance, "tolerance", d.Tolerance, "tolerance variant: channels above this are background")
	fs.IntVar(&o.GreyDiff, "grey-diff", d.GreyDiff, "saturation variant: channel spread below this is greyscale")
	fs.IntVar(&o.BrightLevel, "bright-level", d.BrightLevel, "saturation variant: channels above this are background")
	fs.IntVar(&o.WhiteLevel, "white-level", d.WhiteLevel, "nearwhite variant: channels above this are background")
	fs.IntVar(&o.CheckerDiff, "checker-diff", d.CheckerDiff, "checkerboard variant: maximum channel spread of a cell")
	fs.IntVar(&o.CheckerMinRed, "checker-min-red", d.CheckerMinRed, "checkerboard variant: red must be above this")
}

// resolveConfig layers defaults, the optional config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, g *globalFlags, f *runFlags) (config.Config, error) {
	cfg := config.Default()
	if g.config != "" {
		loaded, err := config.Load(g.config)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("input") {
		cfg.Input = f.input
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("variant") {
		v, err := bgremove.ParseVariant(f.variant)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Variant = v
	}

	pick := func(name string, dst *int, v int) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	pick("tolerance", &cfg.Options.Tolerance, f.opts.Tolerance)
	pick("grey-diff", &cfg.Options.GreyDiff, f.opts.GreyDiff)
	pick("bright-level", &cfg.Options.BrightLevel, f.opts.BrightLevel)
	pick("white-level", &cfg.Options.WhiteLevel, f.opts.WhiteLevel)
	pick("checker-diff", &cfg.Options.CheckerDiff, f.opts.CheckerDiff)
	pick("checker-min-red", &cfg.Options.CheckerMinRed, f.opts.CheckerMinRed)

	if err := cfg.Options.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func requirePath(name, v string) error {
	if v == "" {
		return fmt.Errorf("--%s is required (flag or config file)", name)
	}
	return nil
}
