package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/setanarut/bgremove"
)

// Load reads a YAML run configuration. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &bgremove.OpError{
			Op:   "config.load",
			Kind: bgremove.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return Config{}, &bgremove.OpError{
			Op:   "config.load",
			Kind: bgremove.KindInvalidOptions,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, dto)
}
