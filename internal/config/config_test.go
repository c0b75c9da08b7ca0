package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"schelling/internal/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schelling.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Board.Size != 50 || cfg.Board.Empty != 250 {
		t.Errorf("unexpected board defaults %+v", cfg.Board)
	}
	if cfg.MaxSteps != 20000 {
		t.Errorf("expected MaxSteps 20000, got %d", cfg.MaxSteps)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if got := cfg.GIFOptions(); got != render.DefaultGIFOptions() {
		t.Errorf("animation defaults %+v diverge from %+v", got, render.DefaultGIFOptions())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
board:
  size: 20
  empty: 40
  threshold: 0.7
max_steps: 5000
sweep:
  trials: 3
logging:
  level: debug
  format: json
`)
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Board.Size != 20 || cfg.Board.Empty != 40 || cfg.Board.Threshold != 0.7 {
		t.Errorf("board not loaded: %+v", cfg.Board)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Board.Share != 0.5 || cfg.Board.NoChangeLimit != 1000 {
		t.Errorf("defaults lost: %+v", cfg.Board)
	}
	if cfg.MaxSteps != 5000 || cfg.Sweep.Trials != 3 {
		t.Errorf("max_steps=%d trials=%d", cfg.MaxSteps, cfg.Sweep.Trials)
	}
	if cfg.SweepConfig().MaxSteps != 5000 {
		t.Errorf("sweep should inherit max_steps, got %d", cfg.SweepConfig().MaxSteps)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeConfig(t, "board: [unterminated")
	_, err := LoadFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*File)
	}{
		{"board", func(f *File) { f.Board.Threshold = 0 }},
		{"max steps", func(f *File) { f.MaxSteps = -1 }},
		{"frames", func(f *File) { f.Animation.Frames = -1 }},
		{"delay", func(f *File) { f.Animation.Delay = -1 }},
		{"scale", func(f *File) { f.Animation.Scale = 0 }},
		{"viewer", func(f *File) { f.Viewer.FPS = -1 }},
		{"sweep", func(f *File) { f.Sweep.Step = 0 }},
		{"level", func(f *File) { f.Logging.Level = "trace" }},
		{"format", func(f *File) { f.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func newFlagSet(cfg *File) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindCommon(fs)
	cfg.BindAnimation(fs)
	cfg.BindSweep(fs)
	cfg.Viewer.Bind(fs)
	return fs
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
board:
  size: 30
  seed: 7
sweep:
  step: 0.2
`)
	cfg := Default()
	fs := newFlagSet(cfg)
	if err := fs.Parse([]string{"--size", "12", "--step", "0.05", "--fps", "3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Resolve(path, fs); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Board.Size != 12 {
		t.Errorf("flag should win over file, size = %d", cfg.Board.Size)
	}
	if cfg.Board.Seed != 7 {
		t.Errorf("file should win over default, seed = %d", cfg.Board.Seed)
	}
	if cfg.Sweep.Step != 0.05 {
		t.Errorf("step = %v, want 0.05", cfg.Sweep.Step)
	}
	if cfg.Viewer.FPS != 3 {
		t.Errorf("fps = %d, want 3", cfg.Viewer.FPS)
	}

	// Flags stay bound to the resolved struct.
	if err := fs.Set("size", "14"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if cfg.Board.Size != 14 {
		t.Errorf("flag binding lost after Resolve, size = %d", cfg.Board.Size)
	}
}

func TestResolveEnvironment(t *testing.T) {
	t.Setenv("SCHELLING_LOG_LEVEL", "debug")
	t.Setenv("SCHELLING_SEED", "99")

	cfg := Default()
	fs := newFlagSet(cfg)
	if err := fs.Parse([]string{"--seed", "5"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Resolve("", fs); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("env should override default level, got %q", cfg.Logging.Level)
	}
	if cfg.Board.Seed != 5 {
		t.Errorf("flag should override env seed, got %d", cfg.Board.Seed)
	}
}

func TestResolveMissingFile(t *testing.T) {
	cfg := Default()
	fs := newFlagSet(cfg)
	if err := cfg.Resolve(filepath.Join(t.TempDir(), "nope.yaml"), fs); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestResolveAppliesBoardOverrides(t *testing.T) {
	path := writeConfig(t, `
board:
  size: 30
  seed: 7
`)
	cfg := Default()
	fs := newFlagSet(cfg)
	err := fs.Parse([]string{"--size", "12", "--set", "seed=3", "--set", "no_change_limit=40", "--set", "size=16"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Resolve(path, fs); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Board.Seed != 3 || cfg.Board.NoChangeLimit != 40 {
		t.Errorf("overrides not applied: %+v", cfg.Board)
	}
	if cfg.Board.Size != 16 {
		t.Errorf("--set should win over --size, size = %d", cfg.Board.Size)
	}
	if len(cfg.Set) != 3 {
		t.Errorf("overrides lost while resolving: %q", cfg.Set)
	}
}

func TestResolveRejectsBadOverrides(t *testing.T) {
	for _, arg := range []string{"seed", "=3", "colour=red", "size=big"} {
		cfg := Default()
		fs := newFlagSet(cfg)
		if err := fs.Parse([]string{"--set", arg}); err != nil {
			t.Fatalf("parse %q: %v", arg, err)
		}
		if err := cfg.Resolve("", fs); err == nil {
			t.Errorf("--set %q: expected error", arg)
		}
	}
}
