package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"schelling/internal/core"
)

// GIFOptions controls animated GIF export.
type GIFOptions struct {
	// Scale magnifies every cell to Scale x Scale pixels.
	Scale int
	// Delay is the per-frame delay in hundredths of a second.
	Delay int
	// Hold is the delay applied to the final frame.
	Hold int
}

// DefaultGIFOptions returns the default export settings. The animation
// section of the run configuration starts from them.
func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Scale: 8, Delay: 5, Hold: 200}
}

// EncodeGIF writes frames as a looping animated GIF. Cell values index into
// palette directly.
func EncodeGIF(w io.Writer, frames [][]uint8, size core.Size, palette []color.RGBA, opts GIFOptions) error {
	if len(frames) == 0 {
		return errors.New("render: no frames to encode")
	}
	if len(palette) == 0 || len(palette) > 256 {
		return fmt.Errorf("render: palette must hold 1..256 colours, got %d", len(palette))
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.Hold < opts.Delay {
		opts.Hold = opts.Delay
	}

	pal := make(color.Palette, len(palette))
	for i, c := range palette {
		pal[i] = c
	}
	last := uint8(len(palette) - 1)

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	bounds := image.Rect(0, 0, size.W*opts.Scale, size.H*opts.Scale)
	for i, frame := range frames {
		if len(frame) != size.Cells() {
			return fmt.Errorf("render: frame %d has %d cells, want %d", i, len(frame), size.Cells())
		}
		img := image.NewPaletted(bounds, pal)
		for y := 0; y < bounds.Dy(); y++ {
			row := img.Pix[y*img.Stride:]
			src := frame[(y/opts.Scale)*size.W:]
			for x := 0; x < bounds.Dx(); x++ {
				v := src[x/opts.Scale]
				if v > last {
					v = last
				}
				row[x] = v
			}
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	anim.Delay[len(anim.Delay)-1] = opts.Hold

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("render: encoding gif: %w", err)
	}
	return nil
}
