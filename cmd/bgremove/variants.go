package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/bgremove"
)

func variantsCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}

	c := &cobra.Command{
		Use:   "variants",
		Short: "List background variants with their effective thresholds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, g, f)
			if err != nil {
				return err
			}
			o := cfg.Options
			out := cmd.OutOrStdout()
			for _, v := range bgremove.Variants() {
				switch v {
				case bgremove.VariantTolerance:
					fmt.Fprintf(out, "%-13s r,g,b > %d\n", v, o.Tolerance)
				case bgremove.VariantSaturation:
					fmt.Fprintf(out, "%-13s spread < %d or r,g,b > %d\n", v, o.GreyDiff, o.BrightLevel)
				case bgremove.VariantNearWhite:
					fmt.Fprintf(out, "%-13s r,g,b > %d\n", v, o.WhiteLevel)
				case bgremove.VariantCheckerboard:
					fmt.Fprintf(out, "%-13s spread < %d and r > %d\n", v, o.CheckerDiff, o.CheckerMinRed)
				}
			}
			return nil
		},
	}

	addThresholdFlags(c.Flags(), &f.opts)
	return c
}
