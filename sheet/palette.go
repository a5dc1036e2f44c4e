package sheet

import "image/color"

const paletteSize = 256

var (
	// Fills each glyph's box in monochrome sheets
	transparent = color.RGBA{0xff, 0x00, 0xff, 0xff}
	// Marks every index that no glyph should ever use
	filler = color.RGBA{0x00, 0xff, 0xff, 0xff}
	// The grid and border around the cells
	background = color.RGBA{0xff, 0xff, 0x00, 0xff}
	white      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func gray(y int) color.RGBA {
	return color.RGBA{uint8(y), uint8(y), uint8(y), 0xff}
}

func (o Options) shade(c int) color.RGBA {
	lo, hi := o.MinColor, o.MaxColor
	switch {
	case !o.Antialias:
		if c == inkColor {
			return white
		}
		return filler
	case c == lo && c == hi:
		return gray(128)
	case c >= lo && c <= hi:
		return gray((c - lo) * 255 / (hi - lo))
	case c >= hi && c <= lo:
		return gray((c - hi) * 255 / (lo - hi))
	default:
		return filler
	}
}

// Palette returns the 256 color palette matching the indices Assemble writes
// for the same Options.
func Palette(o Options) color.Palette {
	p := make(color.Palette, paletteSize)
	p[paperColor] = transparent
	for c := paperColor + 1; c < Background; c++ {
		p[c] = o.shade(c)
	}
	p[Background] = background
	return p
}
