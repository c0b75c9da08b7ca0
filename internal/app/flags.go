package app

import "github.com/spf13/pflag"

// Config holds the playback window settings.
type Config struct {
	// FPS is the number of recorded frames shown per second.
	FPS   int `yaml:"fps"`
	Panel int `yaml:"panel"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{FPS: 20, Panel: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.FPS, "fps", c.FPS, "recorded frames shown per second in the window")
	fs.IntVar(&c.Panel, "panel", c.Panel, "width of the HUD panel in pixels (0 hides it)")
}
