package utils

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/bgremove"
)

func twoToneImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := range 40 {
		for x := range 40 {
			c := color.NRGBA{R: 250, G: 250, B: 250, A: 255}
			if x >= 20 {
				c = color.NRGBA{R: 220, G: 90, B: 30, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSortPaletteByBrightness(t *testing.T) {
	palette := []WeightedColor{
		{Col: colorful.Color{R: 1, G: 1, B: 1}},
		{Col: colorful.Color{R: 0, G: 0, B: 0}},
		{Col: colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	}
	SortPaletteByBrightness(palette)
	if palette[0].Col.R != 0 || palette[2].Col.R != 1 {
		t.Fatalf("expected dark to bright order, got %+v", palette)
	}
}

func TestSelectDiverseWeightedColors(t *testing.T) {
	cands := []WeightedColor{
		{Col: colorful.Color{R: 1, G: 1, B: 1}, Weight: 10},
		{Col: colorful.Color{R: 0.99, G: 0.99, B: 0.99}, Weight: 9},
		{Col: colorful.Color{R: 0.9, G: 0.1, B: 0.1}, Weight: 1},
	}
	got := SelectDiverseWeightedColors(cands, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(got))
	}
	if got[0].Weight != 10 {
		t.Fatalf("expected heaviest color as seed, got %+v", got[0])
	}
	if got[1].Col.G > 0.5 {
		t.Fatalf("expected the distant red to be picked second, got %+v", got[1])
	}

	if SelectDiverseWeightedColors(nil, 3) != nil {
		t.Fatalf("expected nil for empty candidates")
	}
}

func TestExtractKMeansPaletteSkipsTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if got := ExtractKMeansPalette(img, 3); got != nil {
		t.Fatalf("expected nil palette for fully transparent image, got %v", got)
	}
}

func TestExtractKMeansPaletteFindsWarmTone(t *testing.T) {
	p := ExtractPalette(twoToneImage(), 2, PaletteMethodKMeans)
	if len(p) == 0 || len(p) > 2 {
		t.Fatalf("expected one or two colors, got %d", len(p))
	}
	foundWarm := false
	for _, c := range p {
		r, g, _ := c.RGB8()
		if int(r)-int(g) > 60 {
			foundWarm = true
		}
	}
	if !foundWarm {
		t.Fatalf("expected the orange tone in %v", p)
	}
}

func TestExtractDominantPaletteBounded(t *testing.T) {
	p := ExtractPalette(twoToneImage(), 2, PaletteMethodDominantColor)
	if len(p) == 0 || len(p) > 2 {
		t.Fatalf("expected one or two colors, got %d", len(p))
	}
	if ExtractDominantPalette(twoToneImage(), 0) != nil {
		t.Fatalf("expected nil palette for k=0")
	}
}

func TestParsePaletteMethod(t *testing.T) {
	if m, err := ParsePaletteMethod("kmeans"); err != nil || m != PaletteMethodKMeans {
		t.Fatalf("expected kmeans, got %v %v", m, err)
	}
	if m, err := ParsePaletteMethod(""); err != nil || m != PaletteMethodDominantColor {
		t.Fatalf("expected dominantcolor default, got %v %v", m, err)
	}
	if _, err := ParsePaletteMethod("median-cut"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSavePalette(t *testing.T) {
	out := filepath.Join(t.TempDir(), "palette.png")
	palette := []WeightedColor{
		{Col: colorful.Color{R: 1, G: 0, B: 0}, Weight: 1},
		{Col: colorful.Color{R: 0, G: 0, B: 1}, Weight: 1},
	}
	im := bgremove.NewImaging()
	if err := SavePalette(im, palette, 8, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := im.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Fatalf("unexpected swatch size %v", img.Bounds())
	}
	r, _, b, _ := img.At(12, 4).RGBA()
	if r != 0 || b>>8 != 255 {
		t.Fatalf("expected blue second tile, got r=%d b=%d", r, b)
	}

	if err := SavePalette(im, nil, 8, out); err == nil {
		t.Fatalf("expected error for empty palette")
	}
}
