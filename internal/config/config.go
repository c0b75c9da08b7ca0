// Package config assembles the run configuration from defaults, an optional
// YAML file, environment variables and command-line flags, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"schelling/internal/app"
	"schelling/internal/logging"
	"schelling/internal/render"
	"schelling/internal/sims/schelling"
	"schelling/internal/sweep"
)

// File is the complete configuration of a CLI invocation.
type File struct {
	Board    schelling.Config `yaml:"board"`
	MaxSteps int              `yaml:"max_steps"`
	// Set holds key=value board overrides from --set, applied after flags.
	Set []string `yaml:"-"`

	Animation AnimationConfig `yaml:"animation"`
	Viewer    app.Config      `yaml:"viewer"`
	Sweep     sweep.Config    `yaml:"sweep"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig controls GIF export.
type AnimationConfig struct {
	// Frames is the approximate number of history frames kept.
	Frames int `yaml:"frames"`
	// Delay between frames in hundredths of a second.
	Delay int `yaml:"delay"`
	// Hold is the delay on the final frame.
	Hold  int `yaml:"hold"`
	Scale int `yaml:"scale"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a File with sensible defaults.
func Default() *File {
	gif := render.DefaultGIFOptions()
	return &File{
		Board:    schelling.DefaultConfig(),
		MaxSteps: schelling.DefaultMaxSteps,
		Animation: AnimationConfig{
			Frames: 350,
			Delay:  gif.Delay,
			Hold:   gif.Hold,
			Scale:  gif.Scale,
		},
		Viewer: *app.NewConfig(),
		Sweep:  sweep.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile loads configuration from a specific YAML file. Keys absent
// from the file keep their default values.
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (f *File) Validate() error {
	if err := f.Board.Validate(); err != nil {
		return err
	}
	if f.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", f.MaxSteps)
	}
	if f.Animation.Frames < 0 {
		return fmt.Errorf("animation frames must be non-negative, got %d", f.Animation.Frames)
	}
	if f.Animation.Delay < 0 || f.Animation.Hold < 0 {
		return fmt.Errorf("animation delays must be non-negative, got delay=%d hold=%d", f.Animation.Delay, f.Animation.Hold)
	}
	if f.Animation.Scale <= 0 {
		return fmt.Errorf("animation scale must be positive, got %d", f.Animation.Scale)
	}
	if f.Viewer.FPS < 0 || f.Viewer.Panel < 0 {
		return fmt.Errorf("viewer fps and panel must be non-negative, got fps=%d panel=%d", f.Viewer.FPS, f.Viewer.Panel)
	}
	if err := f.SweepConfig().Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(f.Logging.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(f.Logging.Format); err != nil {
		return err
	}
	return nil
}

// SweepConfig returns the sweep settings bounded by MaxSteps.
func (f *File) SweepConfig() sweep.Config {
	sc := f.Sweep
	sc.MaxSteps = f.MaxSteps
	return sc
}

// BindCommon attaches board, run and logging flags.
func (f *File) BindCommon(fs *pflag.FlagSet) {
	fs.IntVar(&f.Board.Size, "size", f.Board.Size, "side length of the square grid")
	fs.Int64Var(&f.Board.Seed, "seed", f.Board.Seed, "seed for the initial placement and moves")
	fs.IntVar(&f.Board.NoChangeLimit, "no-change-limit", f.Board.NoChangeLimit, "consecutive steps without a move that end a run")
	fs.IntVar(&f.MaxSteps, "max-steps", f.MaxSteps, "upper bound on steps per run")
	fs.StringVar(&f.Logging.Level, "log-level", f.Logging.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&f.Logging.Format, "log-format", f.Logging.Format, "log format (text, json)")
	fs.StringArrayVar(&f.Set, "set", nil, "board override as key=value (size, e, q, p, seed, no_change_limit, record_history); repeatable")
}

// GIFOptions returns the export settings of the animation section.
func (f *File) GIFOptions() render.GIFOptions {
	return render.GIFOptions{
		Scale: f.Animation.Scale,
		Delay: f.Animation.Delay,
		Hold:  f.Animation.Hold,
	}
}

// BindAnimation attaches GIF export flags.
func (f *File) BindAnimation(fs *pflag.FlagSet) {
	fs.IntVar(&f.Animation.Frames, "frames", f.Animation.Frames, "approximate number of frames in the animation (0 keeps all)")
	fs.IntVar(&f.Animation.Delay, "delay", f.Animation.Delay, "delay between frames in 1/100 s")
	fs.IntVar(&f.Animation.Hold, "hold", f.Animation.Hold, "delay on the final frame in 1/100 s")
	fs.IntVar(&f.Animation.Scale, "scale", f.Animation.Scale, "pixels per cell")
}

// BindSweep attaches threshold sweep flags.
func (f *File) BindSweep(fs *pflag.FlagSet) {
	fs.Float64Var(&f.Sweep.From, "from", f.Sweep.From, "first threshold of the sweep")
	fs.Float64Var(&f.Sweep.To, "to", f.Sweep.To, "last threshold of the sweep")
	fs.Float64Var(&f.Sweep.Step, "step", f.Sweep.Step, "threshold increment")
	fs.IntVar(&f.Sweep.Trials, "trials", f.Sweep.Trials, "boards simulated per threshold")
	fs.IntVar(&f.Sweep.Workers, "workers", f.Sweep.Workers, "concurrent boards (0 uses every CPU)")
}

// Resolve rebuilds f from defaults, the YAML file at path (when non-empty)
// and environment overrides, then re-applies every flag the user set
// explicitly on fs and finally the --set board overrides. The flags must
// have been bound to f.
func (f *File) Resolve(path string, fs *pflag.FlagSet) error {
	changed := map[string]string{}
	lists := map[string][]string{}
	fs.Visit(func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			lists[fl.Name] = sv.GetSlice()
			return
		}
		changed[fl.Name] = fl.Value.String()
	})

	base := Default()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return err
		}
		base = loaded
	}
	applyEnvOverrides(base)
	*f = *base

	for name, value := range changed {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("re-applying --%s: %w", name, err)
		}
	}
	for name, values := range lists {
		if err := fs.Lookup(name).Value.(pflag.SliceValue).Replace(values); err != nil {
			return fmt.Errorf("re-applying --%s: %w", name, err)
		}
	}
	return f.applySet()
}

// applySet parses the --set overrides onto the board configuration.
func (f *File) applySet() error {
	if len(f.Set) == 0 {
		return nil
	}
	values := make(map[string]string, len(f.Set))
	for _, item := range f.Set {
		key, value, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("invalid --set %q, want key=value", item)
		}
		values[strings.TrimSpace(key)] = value
	}
	board, err := f.Board.Apply(values)
	if err != nil {
		return err
	}
	f.Board = board
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *File) {
	if v := os.Getenv("SCHELLING_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SCHELLING_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SCHELLING_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Board.Seed = n
		}
	}
	if v := os.Getenv("SCHELLING_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sweep.Workers = n
		}
	}
}
