package schelling

// Frame is a row-major copy of the grid labels.
type Frame = []uint8

// History returns the snapshots recorded after each attempted relocation,
// oldest first. The returned slice is shared with the board.
func (b *Board) History() []Frame { return b.history }

// Frames subsamples the history down to roughly total frames, always ending
// with the latest snapshot. A non-positive total keeps every frame.
func (b *Board) Frames(total int) []Frame {
	return Subsample(b.history, total)
}

// Subsample keeps every jump-th frame, where jump = len(frames)/total + 1, and
// appends the final frame.
func Subsample(frames []Frame, total int) []Frame {
	n := len(frames)
	if n == 0 {
		return nil
	}
	if total <= 0 {
		return append([]Frame(nil), frames...)
	}
	jump := n/total + 1
	out := make([]Frame, 0, n/jump+2)
	for i := 0; i < n; i += jump {
		out = append(out, frames[i])
	}
	return append(out, frames[n-1])
}
