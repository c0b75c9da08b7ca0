package app

import (
	"errors"
	"slices"
	"testing"

	"github.com/spf13/pflag"

	"schelling/internal/core"
	"schelling/internal/sims/schelling"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"--fps", "5", "--panel", "0"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.FPS != 5 || cfg.Panel != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestNewRecordingSubsamplesHistory(t *testing.T) {
	cfg := schelling.DefaultConfig()
	cfg.Size = 10
	cfg.Empty = 10
	b, err := schelling.New(cfg)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	b.Run(3000)

	rec := NewRecording(b, 50)
	if err := rec.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(rec.Frames) == 0 || len(rec.Frames) > 52 {
		t.Fatalf("unexpected frame count %d", len(rec.Frames))
	}
	if rec.Size != (core.Size{W: 10, H: 10}) {
		t.Fatalf("size = %+v", rec.Size)
	}
	if rec.Threshold != cfg.Threshold {
		t.Fatalf("threshold = %v", rec.Threshold)
	}
	if !slices.Equal(rec.Parameters.Lines(), b.Parameters().Lines()) {
		t.Fatalf("parameters = %q", rec.Parameters.Lines())
	}
}

func TestNewRecordingWithoutHistoryUsesCurrentGrid(t *testing.T) {
	cfg := schelling.DefaultConfig()
	cfg.Size = 4
	cfg.Empty = 2
	b, err := schelling.New(cfg)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	rec := NewRecording(b, 10)
	if len(rec.Frames) != 1 {
		t.Fatalf("expected a single frame, got %d", len(rec.Frames))
	}
	rec.Frames[0][0] = 99
	if b.Cells()[0] == 99 {
		t.Fatalf("recording frame aliases the live grid")
	}
}

func TestRecordingValidate(t *testing.T) {
	rec := Recording{Size: core.Size{W: 2, H: 2}}
	if err := rec.Validate(); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
	rec.Frames = [][]uint8{{0, 1, 2, 1}, {0, 1}}
	if err := rec.Validate(); err == nil {
		t.Fatalf("expected error for short frame")
	}
}

func TestPlaybackStopsOnLastFrame(t *testing.T) {
	pb := newPlayback(3)
	if !pb.tick() || !pb.tick() {
		t.Fatalf("expected two advances")
	}
	if pb.tick() {
		t.Fatalf("advanced past the last frame")
	}
	if pb.index != 2 {
		t.Fatalf("index = %d, want 2", pb.index)
	}

	pb.restart()
	pb.togglePause()
	if pb.tick() {
		t.Fatalf("advanced while paused")
	}
	if !pb.advance() || pb.index != 1 {
		t.Fatalf("manual step should advance while paused, index = %d", pb.index)
	}
}

func TestSessionRecordReplaysFromSeed(t *testing.T) {
	cfg := schelling.DefaultConfig()
	cfg.Size = 10
	cfg.Empty = 10
	cfg.Threshold = 0.6

	fresh, err := schelling.New(cfg)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	want := fresh.Simulate(2000)

	b, err := schelling.New(cfg)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	session := NewSession(b, 2000, 30)

	rec, got := session.Record(0)
	if got != want {
		t.Fatalf("configured seed summary = %+v, want %+v", got, want)
	}
	if !slices.EqualFunc(rec.Frames, NewRecording(fresh, 30).Frames, slices.Equal) {
		t.Fatalf("configured seed did not reproduce the fresh board")
	}

	first, _ := session.Record(99)
	if session.Board().Config().Seed != 99 {
		t.Fatalf("seed = %d, want 99", session.Board().Config().Seed)
	}
	if !slices.Contains(first.Parameters.Lines(), "  Seed: 99") {
		t.Fatalf("recording parameters do not show the new seed: %q", first.Parameters.Lines())
	}
	second, _ := session.Record(99)
	if !slices.EqualFunc(first.Frames, second.Frames, slices.Equal) {
		t.Fatalf("same seed produced different recordings")
	}
}
