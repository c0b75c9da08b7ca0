package render

import (
	"fmt"
	"image"
	"image/color"

	"schelling/internal/core"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FrameImage renders a single frame, magnifying every cell to scale x scale pixels.
func FrameImage(cells []uint8, size core.Size, palette []color.RGBA, scale int) (*image.RGBA, error) {
	if len(cells) != size.Cells() {
		return nil, fmt.Errorf("render: frame has %d cells, want %d", len(cells), size.Cells())
	}
	if scale <= 0 {
		scale = 1
	}
	native := make([]byte, 4*len(cells))
	fillPaletteRGBA(native, cells, palette)

	img := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	for y := 0; y < size.H*scale; y++ {
		row := img.Pix[y*img.Stride:]
		src := native[(y/scale)*size.W*4:]
		for x := 0; x < size.W*scale; x++ {
			copy(row[x*4:x*4+4], src[(x/scale)*4:(x/scale)*4+4])
		}
	}
	return img, nil
}
