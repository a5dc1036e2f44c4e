/*
Package glyph turns rendered glyph images into trimmed, bit-packed monochrome
bitmaps.

When antialiasing, glyphs are rendered at eight times the final size and
every dimension is kept to a multiple of eight so that each final pixel maps
onto a whole 8 by 8 block of sub-pixels.
*/
package glyph

import (
	"image"
	"image/color"

	"github.com/humbertodias/ttf2pcx/fonts"
)

const (
	// Supersample is the linear scale factor used when antialiasing
	Supersample = 8

	// Anything brighter than this is considered ink
	threshold = 128
)

// Source renders a single character of a font as an image. White pixels are
// ink, black pixels are background.
type Source interface {
	Render(d fonts.Descriptor, code rune) (image.Image, error)
}

// Glyph is a packed 1-bit bitmap of a single character. Rows are padded to a
// whole number of bytes with the leftmost pixel in the most significant bit.
type Glyph struct {
	Code   rune
	Width  int
	Height int
	Bits   []byte
}

// BytesPerRow returns the number of bytes used by each row of Bits.
func (g *Glyph) BytesPerRow() int {
	return bytesPerRow(g.Width)
}

// Bit reports whether the pixel at (x, y) is set. Anything outside of the
// bitmap is unset.
func (g *Glyph) Bit(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	i := y*g.BytesPerRow() + x>>3
	if i >= len(g.Bits) {
		return false
	}
	return g.Bits[i]&(0x80>>uint(x&7)) != 0
}

func bytesPerRow(width int) int {
	return (width + 7) >> 3
}

func roundUp(n int) int {
	return (n + Supersample - 1) &^ (Supersample - 1)
}

// Blank returns an empty glyph used in place of one that couldn't be
// rendered.
func Blank(code rune, antialias bool) *Glyph {
	return Rasterize(nil, code, antialias)
}

// bitmap is the unpacked working copy used while trimming.
type bitmap struct {
	width, height, stride int
	pix                   []bool
}

func (b *bitmap) at(x, y int) bool {
	return b.pix[y*b.stride+x]
}

func (b *bitmap) columnEmpty(x int) bool {
	for y := 0; y < b.height; y++ {
		if b.at(x, y) {
			return false
		}
	}
	return true
}

// trim drops empty columns from the right, never going below one column.
func (b *bitmap) trim() {
	for b.width > 1 && b.columnEmpty(b.width-1) {
		b.width--
	}
}

func (b *bitmap) pack(width int) []byte {
	bpr := bytesPerRow(width)
	bits := make([]byte, bpr*b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width && x < width; x++ {
			if b.at(x, y) {
				bits[y*bpr+x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	return bits
}

func threshold8(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y > threshold
}

// Rasterize converts the rendered image m of the character code into a
// Glyph. Pixels outside of m are treated as background and a nil or empty
// image produces a blank glyph. Whitespace and control characters keep
// their full width, everything else has empty columns trimmed from the
// right.
func Rasterize(m image.Image, code rune, antialias bool) *Glyph {
	var r image.Rectangle
	if m != nil {
		r = m.Bounds()
	}

	w, h := r.Dx(), r.Dy()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if antialias {
		w, h = roundUp(w), roundUp(h)
	}

	b := &bitmap{
		width:  w,
		height: h,
		stride: w,
		pix:    make([]bool, w*h),
	}
	for y := 0; y < h && y < r.Dy(); y++ {
		for x := 0; x < w && x < r.Dx(); x++ {
			b.pix[y*w+x] = threshold8(m.At(r.Min.X+x, r.Min.Y+y))
		}
	}

	if code > ' ' {
		b.trim()
	}

	width := b.width
	if antialias {
		width = roundUp(width)
	}

	return &Glyph{
		Code:   code,
		Width:  width,
		Height: b.height,
		Bits:   b.pack(width),
	}
}
