//go:build ebiten

package app

import (
	"errors"
	"time"

	"schelling/internal/core"
	"schelling/internal/render"
	"schelling/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Player adapts a Recording to the ebiten.Game interface. Keys: space pauses,
// N steps one frame, R restarts, S re-runs the board with a new seed, 1 toggles
// the dissatisfied overlay and Q or Esc quits.
type Player struct {
	session *Session
	rec     Recording
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.FixedStep
	pb      *playback

	scale    int
	panel    int
	tickOnce bool
}

// NewPlayer constructs a Player for the provided recording. A non-nil session
// lets the S key re-run the board with a new seed.
func NewPlayer(session *Session, rec Recording, cfg Config, scale int) (*Player, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1
	}
	return &Player{
		session: session,
		rec:     rec,
		painter: render.NewGridPainter(rec.Size.W, rec.Size.H),
		overlay: ui.NewOverlay(rec.Size, rec.Threshold, scale),
		hud:     ui.NewHUD(rec.Parameters, cfg.Panel),
		clock:   core.NewFixedStep(cfg.FPS),
		pb:      newPlayback(len(rec.Frames)),
		scale:   scale,
		panel:   max(cfg.Panel, 0),
	}, nil
}

// Update handles input and advances playback.
func (p *Player) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.pb.togglePause()
		p.clock.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		p.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.pb.restart()
		p.clock.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && p.session != nil {
		rec, _ := p.session.Record(time.Now().UnixNano())
		p.load(rec)
	}

	p.overlay.Update()

	if p.tickOnce {
		p.pb.advance()
		p.tickOnce = false
	} else if p.clock.ShouldStep() {
		p.pb.tick()
	}
	p.hud.Update(p.pb.index, p.pb.total, p.pb.paused)
	return nil
}

// load swaps in a new recording of the same board and restarts playback.
func (p *Player) load(rec Recording) {
	if rec.Validate() != nil {
		return
	}
	p.rec = rec
	p.pb = newPlayback(len(rec.Frames))
	p.hud = ui.NewHUD(rec.Parameters, p.panel)
	p.clock.Reset()
}

// Draw renders the current frame, the overlay and the HUD panel.
func (p *Player) Draw(screen *ebiten.Image) {
	frame := p.rec.Frames[p.pb.index]
	p.painter.Blit(screen, frame, p.rec.Palette, p.scale)
	p.overlay.Draw(screen, frame)
	p.hud.Draw(screen, p.rec.Size.W*p.scale, p.rec.Size.H*p.scale)
}

// Layout returns the logical screen size.
func (p *Player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.rec.Size.W*p.scale + p.panel, p.rec.Size.H * p.scale
}

// Run opens a window and plays the recording until the user quits.
func Run(session *Session, rec Recording, cfg Config, scale int, title string) error {
	player, err := NewPlayer(session, rec, cfg, scale)
	if err != nil {
		return err
	}
	w, h := player.Layout(0, 0)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(player); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
