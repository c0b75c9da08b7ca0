//go:build !ebiten

package app

import "errors"

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("app: the playback window requires building with the 'ebiten' tag")

// Player is a placeholder that satisfies the API expected by the GUI build.
type Player struct{}

// NewPlayer reports that the GUI build tag is missing.
func NewPlayer(*Session, Recording, Config, int) (*Player, error) {
	return nil, ErrNoGUI
}

// Update always reports that the GUI build tag is missing.
func (p *Player) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (p *Player) Draw(any) {}

// Layout returns zeros in the headless build.
func (p *Player) Layout(int, int) (int, int) { return 0, 0 }

// Run reports that the GUI build tag is missing.
func Run(*Session, Recording, Config, int, string) error { return ErrNoGUI }
