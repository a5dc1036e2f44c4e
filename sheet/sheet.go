/*
Package sheet lays out rasterized glyphs as a sprite sheet of 8-bit color
indices and builds the palette that goes with it.

Glyphs are placed row by row in a grid 16 cells wide. Every cell is the same
size, at least 16 pixels larger than the largest glyph in each direction, and
the whole grid is offset by a one pixel border. Anything not covered by a
glyph is left as the background index 255.
*/
package sheet

import (
	"image"
	"image/color"

	"github.com/humbertodias/ttf2pcx/glyph"
)

const (
	// Columns is the number of cells in each row of the grid
	Columns = 16

	// Background is the color index of anything not covered by a glyph
	Background = 255

	// Color indices written for monochrome glyphs
	paperColor = 0
	inkColor   = 1

	cellAlign   = 16
	cellPadding = 16
	border      = 1
	coverage    = glyph.Supersample * glyph.Supersample
)

// Options controls how glyphs are converted to color indices. MinColor and
// MaxColor are only used when antialiasing and may be given in either order.
type Options struct {
	Antialias bool
	MinColor  int
	MaxColor  int
}

func (o Options) scale() int {
	if o.Antialias {
		return glyph.Supersample
	}
	return 1
}

// inkIndex maps the number of set sub-pixels in a block to a color index.
func (o Options) inkIndex(k int) uint8 {
	return uint8(o.MinColor + (o.MaxColor-o.MinColor)*k/coverage)
}

// Sheet is an assembled sprite sheet, Width by Height color indices stored
// row by row.
type Sheet struct {
	Pix        []uint8
	Width      int
	Height     int
	CellWidth  int
	CellHeight int
}

func cellSize(n int) int {
	return (n+cellAlign-1)&^(cellAlign-1) + cellPadding
}

// Origin returns the top-left corner of the i'th cell.
func (s *Sheet) Origin(i int) image.Point {
	return image.Pt(border+s.CellWidth*(i%Columns), border+s.CellHeight*(i/Columns))
}

// Image returns the sheet as a paletted image sharing the sheet's pixels.
func (s *Sheet) Image(p color.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     s.Pix,
		Stride:  s.Width,
		Rect:    image.Rect(0, 0, s.Width, s.Height),
		Palette: p,
	}
}

func (s *Sheet) set(x, y int, c uint8) {
	s.Pix[y*s.Width+x] = c
}

func (s *Sheet) draw(i int, g *glyph.Glyph, o Options) {
	at := s.Origin(i)
	scale := o.scale()

	for py := 0; py < g.Height/scale; py++ {
		for px := 0; px < g.Width/scale; px++ {
			// Never read beyond the glyph's own bitmap
			if (px+1)*scale > g.Width || (py+1)*scale > g.Height {
				continue
			}

			if !o.Antialias {
				c := uint8(paperColor)
				if g.Bit(px, py) {
					c = inkColor
				}
				s.set(at.X+px, at.Y+py, c)
				continue
			}

			var k int
			for yy := 0; yy < scale; yy++ {
				for xx := 0; xx < scale; xx++ {
					if g.Bit(px*scale+xx, py*scale+yy) {
						k++
					}
				}
			}
			if k > 0 {
				s.set(at.X+px, at.Y+py, o.inkIndex(k))
			}
		}
	}
}

// Assemble lays out the glyphs, one per consecutive character, into a new
// Sheet.
func Assemble(glyphs []*glyph.Glyph, o Options) *Sheet {
	var w, h int
	for _, g := range glyphs {
		if g.Width > w {
			w = g.Width
		}
		if g.Height > h {
			h = g.Height
		}
	}
	w /= o.scale()
	h /= o.scale()

	s := &Sheet{
		CellWidth:  cellSize(w),
		CellHeight: cellSize(h),
	}
	s.Width = border + s.CellWidth*Columns
	s.Height = border + s.CellHeight*((len(glyphs)+Columns-1)/Columns)

	s.Pix = make([]uint8, s.Width*s.Height)
	for i := range s.Pix {
		s.Pix[i] = Background
	}

	for i, g := range glyphs {
		s.draw(i, g, o)
	}

	return s
}
