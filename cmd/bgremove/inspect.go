package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/bgremove/internal/inspect"
	"github.com/setanarut/bgremove/internal/logger"
	"github.com/setanarut/bgremove/utils"
)

func inspectCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	var colors int
	var method string
	var swatch string

	c := &cobra.Command{
		Use:   "inspect",
		Short: "Report how much of an image each variant would remove",
		RunE: func(cmd *cobra.Command, _ []string) error {
			im, err := acquireImaging()
			if err != nil {
				logger.L().Error("imaging.unavailable", "err", err)
				fmt.Fprintln(cmd.OutOrStdout(), unavailableMessage)
				return nil
			}
			im.Logger = logger.L()

			pm, err := utils.ParsePaletteMethod(method)
			if err != nil {
				return err
			}
			cfg, err := resolveConfig(cmd, g, f)
			if err != nil {
				return err
			}
			if err := requirePath("input", cfg.Input); err != nil {
				return err
			}

			img, err := im.Load(cfg.Input)
			if err != nil {
				return err
			}
			rep := inspect.Run(img, inspect.Options{Colors: colors, Method: pm, Thresholds: cfg.Options})
			if err := rep.Write(cmd.OutOrStdout()); err != nil {
				return err
			}

			if swatch != "" && len(rep.Palette) > 0 {
				palette := make([]utils.WeightedColor, len(rep.Palette))
				for i, cv := range rep.Palette {
					palette[i] = cv.Color
				}
				if err := utils.SavePalette(im, palette, 64, swatch); err != nil {
					return fmt.Errorf("writing swatch: %w", err)
				}
			}
			return nil
		},
	}

	c.Flags().StringVarP(&f.input, "input", "i", "", "Input image")
	c.Flags().IntVarP(&colors, "colors", "k", 7, "Palette size (0 disables palette extraction)")
	c.Flags().StringVar(&method, "method", "dominantcolor", "Palette method (dominantcolor, kmeans)")
	c.Flags().StringVar(&swatch, "swatch", "", "Optional PNG to write the palette tiles to")
	addThresholdFlags(c.Flags(), &f.opts)
	return c
}
