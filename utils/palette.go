package utils

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/setanarut/bgremove"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor", "dominant":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return PaletteMethodDominantColor, fmt.Errorf("unknown palette method %q", s)
}

// WeightedColor is a palette entry; Weight is its share of the sampled pixels.
type WeightedColor struct {
	Col    colorful.Color
	Weight float64
}

// RGB8 returns the color as 8-bit channels, the domain predicates work on.
func (c WeightedColor) RGB8() (uint8, uint8, uint8) {
	return c.Col.Clamped().RGB255()
}

// SortPaletteByBrightness orders colors from darkest to brightest by relative luminance.
func SortPaletteByBrightness(palette []WeightedColor) {
	slices.SortStableFunc(palette, func(a, b WeightedColor) int {
		ri, gi, bi := a.Col.LinearRgb()
		rj, gj, bj := b.Col.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

func ExtractDominantPalette(img image.Image, k int) []WeightedColor {
	if k <= 0 {
		return nil
	}

	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		return nil
	}

	weighted := make([]WeightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, WeightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k entries that are far apart in Lab,
// seeded with the heaviest one.
func SelectDiverseWeightedColors(cands []WeightedColor, k int) []WeightedColor {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		wc  WeightedColor
		lab [3]float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		c.Col = c.Col.Clamped()
		c.Weight = max(c.Weight, 1e-6)
		l, a, b := c.Col.Lab()
		maxW = max(maxW, c.Weight)
		items = append(items, item{wc: c, lab: [3]float64{l, a, b}})
	}
	k = min(k, len(items))

	selected := make([]bool, len(items))
	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].wc.Weight > items[seed].wc.Weight {
			seed = i
		}
	}
	picked := []int{seed}
	selected[seed] = true

	for len(picked) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range picked {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].wc.Weight/maxW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		picked = append(picked, bestIdx)
	}

	out := make([]WeightedColor, 0, len(picked))
	for _, idx := range picked {
		out = append(out, items[idx].wc)
	}
	return out
}

func ExtractKMeansPalette(img image.Image, k int) []WeightedColor {
	if k <= 0 {
		return nil
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample so large images stay tractable.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(max(k*4, k+2), len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]WeightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, WeightedColor{
			Col:    col,
			Weight: float64(len(c.Observations)) / float64(len(dataset)),
		})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

func ExtractPalette(img image.Image, k int, method PaletteMethod) []WeightedColor {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		slog.Warn("palette.fallback", "from", method.String(), "to", PaletteMethodDominantColor.String())
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

// SavePalette writes one square tile per color, left to right.
func SavePalette(im *bgremove.Imaging, palette []WeightedColor, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.RGB8()
		fill := color.NRGBA{R: r, G: g, B: b, A: 255}
		x0 := i * tileSize
		for y := range tileSize {
			for x := x0; x < x0+tileSize; x++ {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return im.Save(img, filename)
}
