package app

import (
	"errors"
	"fmt"
	"image/color"

	"schelling/internal/core"
	"schelling/internal/sims/schelling"
)

// ErrNoFrames reports a recording with nothing to play.
var ErrNoFrames = errors.New("app: recording has no frames")

// Recording is a finished run prepared for playback.
type Recording struct {
	Frames     [][]uint8
	Size       core.Size
	Palette    []color.RGBA
	Threshold  float64
	Parameters core.ParameterSnapshot
}

// NewRecording subsamples the board history to roughly total frames. The
// initial placement is not part of the history, so a board that never
// attempted a relocation yields its current grid as the only frame.
func NewRecording(b *schelling.Board, total int) Recording {
	frames := b.Frames(total)
	if len(frames) == 0 {
		frames = []schelling.Frame{append([]uint8(nil), b.Cells()...)}
	}
	return Recording{
		Frames:     frames,
		Size:       b.Size(),
		Palette:    b.Palette(),
		Threshold:  b.Config().Threshold,
		Parameters: b.Parameters(),
	}
}

// Validate checks that every frame covers the whole grid.
func (r Recording) Validate() error {
	if len(r.Frames) == 0 {
		return ErrNoFrames
	}
	want := r.Size.Cells()
	for i, f := range r.Frames {
		if len(f) != want {
			return fmt.Errorf("app: frame %d has %d cells, want %d", i, len(f), want)
		}
	}
	return nil
}

// Session re-runs one board from fresh placements for playback.
type Session struct {
	board    *schelling.Board
	maxSteps int
	frames   int
}

// NewSession wraps b. Every recording runs up to maxSteps steps and keeps
// roughly frames history frames.
func NewSession(b *schelling.Board, maxSteps, frames int) *Session {
	return &Session{board: b, maxSteps: maxSteps, frames: frames}
}

// Record re-places the board with seed (zero keeps the configured seed), runs
// it and returns the recording together with the run summary.
func (s *Session) Record(seed int64) (Recording, schelling.Summary) {
	s.board.Reset(seed)
	summary := s.board.Simulate(s.maxSteps)
	return NewRecording(s.board, s.frames), summary
}

// Board returns the board the session drives.
func (s *Session) Board() *schelling.Board { return s.board }
