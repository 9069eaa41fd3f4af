package bgremove

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Transparent is the replacement written for every background pixel.
var Transparent = [4]uint8{255, 255, 255, 0}

type Stats struct {
	Width, Height int
	Total         int
	Removed       int
}

// Coverage is the fraction of pixels classified as background.
func (s Stats) Coverage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Removed) / float64(s.Total)
}

// ToNRGBA returns a copy of img as 8-bit straight-alpha RGBA anchored at (0,0).
// Straight-alpha sources keep their color channels even at alpha 0.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range h {
			so := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+w*4], src.Pix[so:so+w*4])
		}
	case *image.NRGBA64:
		for y := range h {
			so := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := out.Pix[y*out.Stride : y*out.Stride+w*4]
			for x := range w {
				// High byte of each big-endian 16-bit channel.
				for c := range 4 {
					row[x*4+c] = src.Pix[so+x*8+c*2]
				}
			}
		}
	case *image.Paletted:
		lut := paletteLUT(src.Palette)
		for y := range h {
			so := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := out.Pix[y*out.Stride : y*out.Stride+w*4]
			for x := range w {
				c := lut[src.Pix[so+x]]
				row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, c.A
			}
		}
	default:
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	}
	return out
}

// paletteLUT maps palette indices to straight-alpha colors. PNG tRNS palettes
// decode to color.NRGBA entries, which are used as-is. Indices past the palette
// map to fully transparent black.
func paletteLUT(p color.Palette) [256]color.NRGBA {
	var lut [256]color.NRGBA
	for i, c := range p {
		if i >= len(lut) {
			break
		}
		if nc, ok := c.(color.NRGBA); ok {
			lut[i] = nc
			continue
		}
		lut[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return lut
}

// Apply classifies every pixel of img with pred in row-major order. Background pixels
// become Transparent; all others are copied unchanged, alpha included.
func Apply(img image.Image, pred Predicate) (*image.NRGBA, Stats) {
	out := ToNRGBA(img)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	st := Stats{Width: w, Height: h, Total: w * h}
	for y := range h {
		row := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := range w {
			p := row[x*4 : x*4+4 : x*4+4]
			if pred(p[0], p[1], p[2]) {
				copy(p, Transparent[:])
				st.Removed++
			}
		}
	}
	return out, st
}
