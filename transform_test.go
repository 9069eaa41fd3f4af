package bgremove

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
)

func randomImage(w, h int, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.IntN(256))
	}
	// Bias a stripe towards light greys so every variant has something to remove.
	for x := range w {
		v := uint8(200 + rng.IntN(56))
		img.SetNRGBA(x, 0, color.NRGBA{R: v, G: v, B: v, A: uint8(rng.IntN(256))})
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestApplyProperties(t *testing.T) {
	src := randomImage(37, 23, 1)
	o := DefaultOptions()

	for _, v := range Variants() {
		pred := o.Predicate(v)
		out, st := Apply(src, pred)

		if out.Bounds() != src.Bounds() {
			t.Fatalf("%s: bounds changed from %v to %v", v, src.Bounds(), out.Bounds())
		}
		if st.Total != 37*23 || st.Width != 37 || st.Height != 23 {
			t.Fatalf("%s: unexpected stats %+v", v, st)
		}

		removed := 0
		for y := range 23 {
			for x := range 37 {
				in := src.NRGBAAt(x, y)
				got := out.NRGBAAt(x, y)
				if pred(in.R, in.G, in.B) {
					removed++
					if got != (color.NRGBA{255, 255, 255, 0}) {
						t.Fatalf("%s: background pixel at %d,%d became %v", v, x, y, got)
					}
				} else if got != in {
					t.Fatalf("%s: foreground pixel at %d,%d changed %v -> %v", v, x, y, in, got)
				}
			}
		}
		if removed != st.Removed {
			t.Fatalf("%s: stats report %d removed, counted %d", v, st.Removed, removed)
		}
		if removed == 0 {
			t.Fatalf("%s: expected the light stripe to be removed", v)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	src := randomImage(16, 16, 7)
	o := DefaultOptions()
	for _, v := range Variants() {
		pred := o.Predicate(v)
		once, _ := Apply(src, pred)
		twice, _ := Apply(once, pred)
		for i := range once.Pix {
			if once.Pix[i] != twice.Pix[i] {
				t.Fatalf("%s: second pass changed byte %d", v, i)
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	src := randomImage(8, 8, 3)
	before := append([]uint8(nil), src.Pix...)
	Apply(src, DefaultOptions().Predicate(VariantTolerance))
	for i := range before {
		if before[i] != src.Pix[i] {
			t.Fatalf("input mutated at byte %d", i)
		}
	}
}

func TestApplyNormalizesLayoutAndOrigin(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 9, 7))
	gray.SetGray(5, 5, color.Gray{Y: 250})
	gray.SetGray(6, 5, color.Gray{Y: 10})

	out, st := Apply(gray, DefaultOptions().Predicate(VariantNearWhite))
	if out.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("expected origin-anchored bounds, got %v", out.Bounds())
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 0}) {
		t.Fatalf("expected near-white gray pixel removed, got %v", got)
	}
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{10, 10, 10, 255}) {
		t.Fatalf("expected dark pixel kept opaque, got %v", got)
	}
	if st.Removed != 1 {
		t.Fatalf("expected 1 removed pixel, got %d", st.Removed)
	}
}

func TestApplySubImageKeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 250, G: 100, B: 20, A: 3})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	out, _ := Apply(sub, DefaultOptions().Predicate(VariantSaturation))
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 250, G: 100, B: 20, A: 3}) {
		t.Fatalf("expected low-alpha foreground copied exactly, got %v", got)
	}
}

func TestStatsCoverage(t *testing.T) {
	if got := (Stats{}).Coverage(); got != 0 {
		t.Fatalf("expected 0 for empty stats, got %v", got)
	}
	if got := (Stats{Total: 4, Removed: 1}).Coverage(); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
}

func TestApplyPalettedKeepsPaletteChannels(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{R: 200, G: 10, B: 10, A: 0},
		color.NRGBA{R: 250, G: 100, B: 20, A: 3},
		color.NRGBA{R: 250, G: 250, B: 250, A: 255},
		color.RGBA{R: 50, G: 50, B: 50, A: 255},
	}
	src := image.NewPaletted(image.Rect(0, 0, 4, 1), pal)
	for x := range 4 {
		src.SetColorIndex(x, 0, uint8(x))
	}

	out, st := Apply(src, DefaultOptions().Predicate(VariantTolerance))
	want := []color.NRGBA{
		{R: 200, G: 10, B: 10, A: 0},
		{R: 250, G: 100, B: 20, A: 3},
		{R: 255, G: 255, B: 255, A: 0},
		{R: 50, G: 50, B: 50, A: 255},
	}
	for x, w := range want {
		if got := out.NRGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
	if st.Removed != 1 {
		t.Fatalf("expected only the white entry removed, got %d", st.Removed)
	}
}

func TestApplyNRGBA64UsesHighByte(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	src.SetNRGBA64(0, 0, color.NRGBA64{R: 250 << 8, G: 100 << 8, B: 20 << 8, A: 3 << 8})
	src.SetNRGBA64(1, 0, color.NRGBA64{R: 216<<8 | 0xff, G: 216 << 8, B: 216<<8 | 0x80, A: 0x0101})

	out, _ := Apply(src, DefaultOptions().Predicate(VariantTolerance))
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 250, G: 100, B: 20, A: 3}) {
		t.Fatalf("expected low-alpha 16-bit pixel kept exactly, got %v", got)
	}
	// 216 on every channel is above 215 regardless of the low byte or alpha.
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 0}) {
		t.Fatalf("expected 216-grey pixel removed, got %v", got)
	}
}
