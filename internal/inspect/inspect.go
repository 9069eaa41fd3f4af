// Package inspect reports how each background variant would treat an image
// before anything is written.
package inspect

import (
	"fmt"
	"image"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"

	"github.com/setanarut/bgremove"
	"github.com/setanarut/bgremove/utils"
)

type Options struct {
	// Palette size. Zero skips palette extraction.
	Colors int
	Method utils.PaletteMethod
	// Longest edge of the downscaled copy the palette is sampled from. Zero means 256.
	PaletteSide int
	// Thresholds used to build every variant's predicate.
	Thresholds bgremove.Options
}

type ColorVerdict struct {
	Color     utils.WeightedColor
	Hex       string
	RemovedBy []bgremove.Variant
}

type VariantCoverage struct {
	Variant bgremove.Variant
	Removed int
	Total   int
}

func (c VariantCoverage) Fraction() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Removed) / float64(c.Total)
}

type Report struct {
	Width, Height int
	Palette       []ColorVerdict
	Coverage      []VariantCoverage
	// Channel spread (largest pairwise channel difference) over opaque-ish pixels.
	SpreadMean   float64
	SpreadStdDev float64
}

func Run(img image.Image, opt Options) Report {
	src := bgremove.ToNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	rep := Report{Width: w, Height: h}

	variants := bgremove.Variants()
	preds := make([]bgremove.Predicate, len(variants))
	rep.Coverage = make([]VariantCoverage, len(variants))
	for i, v := range variants {
		preds[i] = opt.Thresholds.Predicate(v)
		rep.Coverage[i] = VariantCoverage{Variant: v, Total: w * h}
	}

	spreads := make([]float64, 0, w*h)
	for y := range h {
		for x := range w {
			off := src.PixOffset(x, y)
			r, g, b, a := src.Pix[off], src.Pix[off+1], src.Pix[off+2], src.Pix[off+3]
			for i, pred := range preds {
				if pred(r, g, b) {
					rep.Coverage[i].Removed++
				}
			}
			if a != 0 {
				spreads = append(spreads, float64(bgremove.ChannelSpread(r, g, b)))
			}
		}
	}
	if len(spreads) > 0 {
		rep.SpreadMean, rep.SpreadStdDev = stat.MeanStdDev(spreads, nil)
	}

	if opt.Colors > 0 {
		palette := utils.ExtractPalette(paletteSource(src, opt.PaletteSide), opt.Colors, opt.Method)
		utils.SortPaletteByBrightness(palette)
		rep.Palette = Verdicts(palette, opt.Thresholds)
	}
	return rep
}

// Verdicts lists, for each palette color, the variants that would remove it.
func Verdicts(palette []utils.WeightedColor, thresholds bgremove.Options) []ColorVerdict {
	var out []ColorVerdict
	for _, c := range palette {
		r, g, b := c.RGB8()
		cv := ColorVerdict{Color: c, Hex: c.Col.Hex()}
		for _, v := range bgremove.Variants() {
			if thresholds.Predicate(v)(r, g, b) {
				cv.RemovedBy = append(cv.RemovedBy, v)
			}
		}
		out = append(out, cv)
	}
	return out
}

func paletteSource(src *image.NRGBA, side int) image.Image {
	if side <= 0 {
		side = 256
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	long := max(w, h)
	if long <= side {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, max(1, w*side/long), max(1, h*side/long)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func (r Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "size\t%dx%d\n", r.Width, r.Height)
	fmt.Fprintf(tw, "channel spread\tmean %.1f\tstddev %.1f\n", r.SpreadMean, r.SpreadStdDev)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "VARIANT\tREMOVED\tCOVERAGE")
	for _, c := range r.Coverage {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", c.Variant, c.Removed, c.Fraction()*100)
	}
	if len(r.Palette) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "COLOR\tWEIGHT\tREMOVED BY")
		for _, c := range r.Palette {
			by := "-"
			if len(c.RemovedBy) > 0 {
				names := make([]string, len(c.RemovedBy))
				for i, v := range c.RemovedBy {
					names[i] = v.String()
				}
				by = strings.Join(names, ",")
			}
			fmt.Fprintf(tw, "%s\t%.3f\t%s\n", c.Hex, c.Color.Weight, by)
		}
	}
	return tw.Flush()
}
