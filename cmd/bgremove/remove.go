package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/bgremove"
	"github.com/setanarut/bgremove/internal/config"
	"github.com/setanarut/bgremove/internal/logger"
)

func removeCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}

	c := &cobra.Command{
		Use:   "remove",
		Short: "Write a copy of the input with background pixels made transparent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			im, err := acquireImaging()
			if err != nil {
				logger.L().Error("imaging.unavailable", "err", err)
				fmt.Fprintln(cmd.OutOrStdout(), unavailableMessage)
				return nil
			}
			im.Logger = logger.L()

			cfg, err := resolveConfig(cmd, g, f)
			if err != nil {
				return err
			}
			if err := requirePath("input", cfg.Input); err != nil {
				return err
			}
			if err := requirePath("output", cfg.Output); err != nil {
				return err
			}

			if _, err := im.RemoveBackground(cfg.Input, cfg.Output, cfg.Options.Predicate(cfg.Variant)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), statusLine(cfg))
			return nil
		},
	}

	c.Flags().StringVarP(&f.input, "input", "i", "", "Input image (PNG, BMP, TIFF or WebP)")
	c.Flags().StringVarP(&f.output, "output", "o", "", "Output PNG")
	c.Flags().StringVarP(&f.variant, "variant", "v", bgremove.VariantTolerance.String(), "Background heuristic (tolerance, saturation, nearwhite, checkerboard)")
	addThresholdFlags(c.Flags(), &f.opts)
	return c
}

const unavailableMessage = "Image support is unavailable: the PNG codec could not be initialised."

func statusLine(cfg config.Config) string {
	switch cfg.Variant {
	case bgremove.VariantSaturation:
		return fmt.Sprintf("Successfully isolated colored foreground from %s", cfg.Input)
	case bgremove.VariantNearWhite:
		return fmt.Sprintf("Successfully processed %s, keeping the base and shadows", cfg.Input)
	case bgremove.VariantCheckerboard:
		return fmt.Sprintf("Successfully removed checkerboard from %s", cfg.Input)
	default:
		return fmt.Sprintf("Successfully processed %s with tolerance %d", cfg.Input, cfg.Options.Tolerance)
	}
}
