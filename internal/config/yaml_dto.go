package config

type YAMLConfig struct {
	Input      string         `yaml:"input"`
	Output     string         `yaml:"output"`
	Variant    string         `yaml:"variant"`
	Thresholds YAMLThresholds `yaml:"thresholds"`
}

// Nil fields keep their default.
type YAMLThresholds struct {
	Tolerance     *int `yaml:"tolerance"`
	GreyDiff      *int `yaml:"grey_diff"`
	BrightLevel   *int `yaml:"bright_level"`
	WhiteLevel    *int `yaml:"white_level"`
	CheckerDiff   *int `yaml:"checker_diff"`
	CheckerMinRed *int `yaml:"checker_min_red"`
}
