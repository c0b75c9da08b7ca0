//go:build ebiten

package ui

import (
	"image/color"

	"schelling/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var dissatisfiedTint = color.RGBA{R: 255, G: 196, B: 0, A: 150}

// Overlay highlights occupants below the satisfaction threshold. Key 1
// toggles it.
type Overlay struct {
	size      core.Size
	threshold float64
	scale     int
	show      bool

	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs a hidden overlay for a board of the given size.
func NewOverlay(size core.Size, threshold float64, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{size: size, threshold: threshold, scale: scale}
}

// Update polls the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw tints the dissatisfied cells of frame onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, frame []uint8) {
	if !o.show {
		return
	}
	mask := DissatisfiedMask(frame, o.size, o.threshold)
	if mask == nil {
		return
	}
	total := o.size.Cells()
	if o.maskImg == nil {
		o.maskImg = ebiten.NewImage(o.size.W, o.size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	for i, hit := range mask {
		base := i * 4
		if !hit {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		// Premultiplied alpha.
		o.maskBuf[base+0] = premultiply(dissatisfiedTint.R, dissatisfiedTint.A)
		o.maskBuf[base+1] = premultiply(dissatisfiedTint.G, dissatisfiedTint.A)
		o.maskBuf[base+2] = premultiply(dissatisfiedTint.B, dissatisfiedTint.A)
		o.maskBuf[base+3] = dissatisfiedTint.A
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func premultiply(c, a uint8) uint8 {
	return uint8(uint16(c) * uint16(a) / 255)
}
