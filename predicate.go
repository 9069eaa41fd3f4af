package bgremove

import (
	"fmt"
	"strings"
)

// Predicate reports whether a pixel with the given channels is background.
// Alpha is never consulted.
type Predicate func(r, g, b uint8) bool

type Variant int

const (
	VariantTolerance Variant = iota
	VariantSaturation
	VariantNearWhite
	VariantCheckerboard
)

func Variants() []Variant {
	return []Variant{VariantTolerance, VariantSaturation, VariantNearWhite, VariantCheckerboard}
}

func (v Variant) String() string {
	switch v {
	case VariantSaturation:
		return "saturation"
	case VariantNearWhite:
		return "nearwhite"
	case VariantCheckerboard:
		return "checkerboard"
	default:
		return "tolerance"
	}
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tolerance", "":
		return VariantTolerance, nil
	case "saturation", "greyscale", "grayscale":
		return VariantSaturation, nil
	case "nearwhite", "near-white", "white":
		return VariantNearWhite, nil
	case "checkerboard", "checker":
		return VariantCheckerboard, nil
	}
	return VariantTolerance, &OpError{
		Op:   "bgremove.parse_variant",
		Kind: KindInvalidOptions,
		Err:  fmt.Errorf("unknown variant %q", s),
	}
}

type Options struct {
	// Tolerance variant: a pixel is background when every channel is strictly above it.
	// 215 removes light grey drop shadows together with the white backdrop.
	Tolerance int
	// Saturation variant: pixels whose largest pairwise channel difference is below
	// GreyDiff count as greyscale (shadow, backdrop, near-black) and are removed.
	GreyDiff int
	// Saturation variant: pixels with all channels strictly above BrightLevel are removed
	// even when slightly tinted.
	BrightLevel int
	// Near-white variant: only channels strictly above WhiteLevel are removed, so shadow
	// gradients survive.
	WhiteLevel int
	// Checkerboard variant: maximum pairwise channel difference of a checker cell.
	CheckerDiff int
	// Checkerboard variant: red must be strictly above this for a pixel to be a checker cell.
	CheckerMinRed int
}

func DefaultOptions() Options {
	return Options{
		Tolerance:     215,
		GreyDiff:      35,
		BrightLevel:   200,
		WhiteLevel:    245,
		CheckerDiff:   15,
		CheckerMinRed: 180,
	}
}

func (o Options) Validate() error {
	fields := []struct {
		name string
		v    int
	}{
		{"tolerance", o.Tolerance},
		{"grey_diff", o.GreyDiff},
		{"bright_level", o.BrightLevel},
		{"white_level", o.WhiteLevel},
		{"checker_diff", o.CheckerDiff},
		{"checker_min_red", o.CheckerMinRed},
	}
	for _, f := range fields {
		if f.v < 0 || f.v > 255 {
			return &OpError{
				Op:   "bgremove.validate_options",
				Kind: KindInvalidOptions,
				Err:  fmt.Errorf("%s must be within [0,255], got %d", f.name, f.v),
			}
		}
	}
	return nil
}

func (o Options) Predicate(v Variant) Predicate {
	switch v {
	case VariantSaturation:
		return SaturationGreyscale(o.GreyDiff, o.BrightLevel)
	case VariantNearWhite:
		return NearWhite(o.WhiteLevel)
	case VariantCheckerboard:
		return Checkerboard(o.CheckerDiff, o.CheckerMinRed)
	default:
		return ToleranceThreshold(o.Tolerance)
	}
}

// ============ Predicates ============

func ToleranceThreshold(tolerance int) Predicate {
	return func(r, g, b uint8) bool {
		return allAbove(r, g, b, tolerance)
	}
}

func SaturationGreyscale(greyDiff, bright int) Predicate {
	return func(r, g, b uint8) bool {
		return ChannelSpread(r, g, b) < greyDiff || allAbove(r, g, b, bright)
	}
}

func NearWhite(level int) Predicate {
	return ToleranceThreshold(level)
}

func Checkerboard(diff, minRed int) Predicate {
	return func(r, g, b uint8) bool {
		ri, gi, bi := int(r), int(g), int(b)
		return absInt(ri-gi) < diff && absInt(ri-bi) < diff && absInt(gi-bi) < diff && ri > minRed
	}
}

func allAbove(r, g, b uint8, level int) bool {
	return int(r) > level && int(g) > level && int(b) > level
}

// ChannelSpread is the largest pairwise difference between the three channels.
func ChannelSpread(r, g, b uint8) int {
	ri, gi, bi := int(r), int(g), int(b)
	return max(absInt(ri-gi), absInt(ri-bi), absInt(gi-bi))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
