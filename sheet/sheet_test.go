package sheet

import (
	"image"
	"image/color"
	"testing"

	"github.com/humbertodias/ttf2pcx/glyph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawing(rows ...string) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				m.SetGray(x, y, color.Gray{0xff})
			}
		}
	}
	return m
}

func solid(w, h int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m
}

// covered reports whether (x, y) lies within the rendered extent of any
// glyph on the sheet.
func covered(s *Sheet, glyphs []*glyph.Glyph, o Options, x, y int) bool {
	for i, g := range glyphs {
		r := image.Rect(0, 0, g.Width/o.scale(), g.Height/o.scale()).Add(s.Origin(i))
		if image.Pt(x, y).In(r) {
			return true
		}
	}
	return false
}

func assertBackground(t *testing.T, s *Sheet, glyphs []*glyph.Glyph, o Options) {
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if !covered(s, glyphs, o, x, y) {
				if !assert.Equal(t, uint8(Background), s.Pix[y*s.Width+x], "pixel (%d, %d)", x, y) {
					return
				}
			}
		}
	}
}

func TestAssembleSingleGlyph(t *testing.T) {
	glyphs := []*glyph.Glyph{
		glyph.Rasterize(drawing(
			".#...",
			"#.#..",
			"###..",
			"#.#.#",
		), 'A', false),
	}
	o := Options{}

	s := Assemble(glyphs, o)
	assert.Equal(t, 32, s.CellWidth)
	assert.Equal(t, 32, s.CellHeight)
	assert.Equal(t, 1+32*Columns, s.Width)
	assert.Equal(t, 1+32, s.Height)
	assert.Len(t, s.Pix, s.Width*s.Height)
	assert.Equal(t, image.Pt(1, 1), s.Origin(0))

	want := [][]uint8{
		{0, 1, 0, 0, 0},
		{1, 0, 1, 0, 0},
		{1, 1, 1, 0, 0},
		{1, 0, 1, 0, 1},
	}
	for y, row := range want {
		for x, c := range row {
			assert.Equal(t, c, s.Pix[(y+1)*s.Width+x+1], "pixel (%d, %d)", x, y)
		}
	}

	assertBackground(t, s, glyphs, o)
}

func TestAssembleGrid(t *testing.T) {
	var glyphs []*glyph.Glyph
	for c := rune(0x20); c <= 0x7f; c++ {
		glyphs = append(glyphs, glyph.Rasterize(drawing("#.", ".#"), c, false))
	}
	require.Len(t, glyphs, 96)
	o := Options{}

	s := Assemble(glyphs, o)
	assert.Equal(t, 1+s.CellWidth*Columns, s.Width)
	assert.Equal(t, 1+s.CellHeight*6, s.Height)
	assert.Equal(t, image.Pt(1+s.CellWidth*15, 1+s.CellHeight*5), s.Origin(95))
	assert.Equal(t, image.Pt(1, 1+s.CellHeight), s.Origin(16))

	assertBackground(t, s, glyphs, o)
}

func TestAssembleCellSize(t *testing.T) {
	tables := []struct {
		width, height int
		antialias     bool
		cw, ch        int
	}{
		{1, 1, false, 32, 32},
		{16, 15, false, 32, 32},
		{17, 32, false, 48, 48},
		{8, 8, true, 32, 32},
		{136, 256, true, 48, 48},
	}

	for _, table := range tables {
		g := &glyph.Glyph{
			Code:   'A',
			Width:  table.width,
			Height: table.height,
			Bits:   make([]byte, (table.width+7)/8*table.height),
		}
		s := Assemble([]*glyph.Glyph{g}, Options{Antialias: table.antialias, MinColor: 1, MaxColor: 254})
		assert.Equal(t, table.cw, s.CellWidth)
		assert.Equal(t, table.ch, s.CellHeight)
	}
}

func TestAssembleEmpty(t *testing.T) {
	s := Assemble(nil, Options{})
	assert.Equal(t, 1+cellPadding*Columns, s.Width)
	assert.Equal(t, 1, s.Height)
	for _, c := range s.Pix {
		assert.Equal(t, uint8(Background), c)
	}
}

func TestAssembleAntialias(t *testing.T) {
	o := Options{Antialias: true, MinColor: 1, MaxColor: 254}

	// Left block fully covered, right block half covered, bottom row empty
	m := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 || y < 4 {
				m.SetGray(x, y, color.Gray{0xff})
			}
		}
	}
	glyphs := []*glyph.Glyph{glyph.Rasterize(m, 'A', true)}
	require.Equal(t, 16, glyphs[0].Width)

	s := Assemble(glyphs, o)
	at := func(x, y int) uint8 {
		return s.Pix[(y+1)*s.Width+x+1]
	}
	assert.Equal(t, uint8(254), at(0, 0))
	assert.Equal(t, uint8(1+253*32/64), at(1, 0))
	assert.Equal(t, uint8(Background), at(0, 1))
	assert.Equal(t, uint8(Background), at(1, 1))

	assertBackground(t, s, glyphs, o)
}

func TestInkIndexMonotonic(t *testing.T) {
	for _, o := range []Options{
		{Antialias: true, MinColor: 1, MaxColor: 254},
		{Antialias: true, MinColor: 10, MaxColor: 20},
		{Antialias: true, MinColor: 100, MaxColor: 100},
	} {
		prev := o.inkIndex(0)
		for k := 1; k <= coverage; k++ {
			c := o.inkIndex(k)
			assert.True(t, c >= prev, "k %d with %+v", k, o)
			assert.True(t, int(c) >= o.MinColor && int(c) <= o.MaxColor)
			prev = c
		}
	}
}

func TestInkIndexFullCoverage(t *testing.T) {
	o := Options{Antialias: true, MinColor: 1, MaxColor: 254}
	assert.Equal(t, uint8(254), o.inkIndex(coverage))
}

func TestInkIndexSinglePoint(t *testing.T) {
	o := Options{Antialias: true, MinColor: 100, MaxColor: 100}
	p := Palette(o)
	for k := 1; k <= coverage; k++ {
		assert.Equal(t, gray(128), p[o.inkIndex(k)])
	}
}

func TestInkIndexInverted(t *testing.T) {
	o := Options{Antialias: true, MinColor: 200, MaxColor: 50}
	p := Palette(o)
	for k := 1; k <= coverage; k++ {
		c := o.inkIndex(k)
		assert.True(t, c >= 50 && c <= 200, "k %d gave %d", k, c)
		assert.NotEqual(t, filler, p[c])
	}
	assert.Equal(t, uint8(50), o.inkIndex(coverage))
}
