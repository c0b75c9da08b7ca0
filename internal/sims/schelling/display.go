package schelling

import "image/color"

var labelPalette = []color.RGBA{
	Empty:  {R: 255, G: 255, B: 255, A: 255},
	GroupA: {R: 31, G: 78, B: 201, A: 255},
	GroupB: {R: 214, G: 39, B: 40, A: 255},
}

// Palette maps labels to colours: white for empty cells, blue for GroupA and
// red for GroupB.
func Palette() []color.RGBA { return labelPalette }

// Palette exposes the color palette used for rendering the board.
func (b *Board) Palette() []color.RGBA { return labelPalette }
