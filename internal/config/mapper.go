package config

import (
	"errors"

	"github.com/setanarut/bgremove"
)

// Config is the resolved run configuration.
type Config struct {
	Input   string
	Output  string
	Variant bgremove.Variant
	Options bgremove.Options
}

func Default() Config {
	return Config{
		Variant: bgremove.VariantTolerance,
		Options: bgremove.DefaultOptions(),
	}
}

func MapConfig(path string, dto YAMLConfig) (Config, error) {
	cfg := Default()
	cfg.Input = dto.Input
	cfg.Output = dto.Output

	v, err := bgremove.ParseVariant(dto.Variant)
	if err != nil {
		return Config{}, withPath(err, path)
	}
	cfg.Variant = v

	t := dto.Thresholds
	override(&cfg.Options.Tolerance, t.Tolerance)
	override(&cfg.Options.GreyDiff, t.GreyDiff)
	override(&cfg.Options.BrightLevel, t.BrightLevel)
	override(&cfg.Options.WhiteLevel, t.WhiteLevel)
	override(&cfg.Options.CheckerDiff, t.CheckerDiff)
	override(&cfg.Options.CheckerMinRed, t.CheckerMinRed)

	if err := cfg.Options.Validate(); err != nil {
		return Config{}, withPath(err, path)
	}
	return cfg, nil
}

func override(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func withPath(err error, path string) error {
	var oe *bgremove.OpError
	if errors.As(err, &oe) {
		return &bgremove.OpError{Op: "config.map", Kind: oe.Kind, Path: path, Err: oe.Err}
	}
	return &bgremove.OpError{Op: "config.map", Kind: bgremove.KindInvalidOptions, Path: path, Err: err}
}
