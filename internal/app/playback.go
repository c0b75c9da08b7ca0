package app

// playback tracks the cursor into a recording. It stops on the last frame
// rather than looping.
type playback struct {
	total  int
	index  int
	paused bool
}

func newPlayback(total int) *playback {
	return &playback{total: total}
}

// advance moves one frame forward and reports whether the cursor moved.
func (p *playback) advance() bool {
	if p.index+1 >= p.total {
		return false
	}
	p.index++
	return true
}

// tick advances when playing.
func (p *playback) tick() bool {
	if p.paused {
		return false
	}
	return p.advance()
}

func (p *playback) togglePause() { p.paused = !p.paused }

func (p *playback) restart() {
	p.index = 0
	p.paused = false
}
