package glyph

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawing builds a white on black image from rows of '#' and '.'
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

func toImage(g *Glyph) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Bit(x, y) {
				m.SetGray(x, y, color.Gray{0xff})
			}
		}
	}
	return m
}

func assertInvariants(t *testing.T, g *Glyph, antialias bool) {
	assert.True(t, g.Width >= 1)
	assert.True(t, g.Height >= 1)
	assert.Equal(t, g.BytesPerRow()*g.Height, len(g.Bits))
	if antialias {
		assert.Equal(t, 0, g.Width%Supersample)
		assert.Equal(t, 0, g.Height%Supersample)
	}
}

func TestRasterizePacking(t *testing.T) {
	m := drawing(
		"#.........#",
		".#........#",
	)
	g := Rasterize(m, 'x', false)
	assertInvariants(t, g, false)

	assert.Equal(t, 11, g.Width)
	assert.Equal(t, 2, g.Height)
	assert.Equal(t, 2, g.BytesPerRow())
	assert.Equal(t, []byte{0x80, 0x20, 0x40, 0x20}, g.Bits)
	assert.True(t, g.Bit(10, 1))
	assert.False(t, g.Bit(11, 1))
	assert.False(t, g.Bit(-1, 0))
}

func TestRasterizeThreshold(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 4, 1))
	m.SetGray(0, 0, color.Gray{128})
	m.SetGray(1, 0, color.Gray{129})
	m.SetGray(2, 0, color.Gray{127})
	m.SetGray(3, 0, color.Gray{255})

	g := Rasterize(m, ' ', false)
	assert.Equal(t, []byte{0x50}, g.Bits)
}

func TestRasterizeTrim(t *testing.T) {
	m := drawing(
		"##......",
		".#......",
	)

	g := Rasterize(m, 'A', false)
	assertInvariants(t, g, false)
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, []byte{0xc0, 0x40}, g.Bits)

	// Trimming is idempotent
	again := Rasterize(toImage(g), 'A', false)
	assert.Equal(t, g, again)
}

func TestRasterizeTrimKeepsOneColumn(t *testing.T) {
	g := Rasterize(drawing("....", "...."), 'A', false)
	assertInvariants(t, g, false)
	assert.Equal(t, 1, g.Width)
	assert.Equal(t, 2, g.Height)
}

func TestRasterizeNoTrim(t *testing.T) {
	for _, code := range []rune{' ', '\t', 0x01} {
		g := Rasterize(drawing("#.....", "......"), code, false)
		assert.Equal(t, 6, g.Width, "code %#x", code)
	}
}

func TestRasterizeAntialias(t *testing.T) {
	// 13 wide, 3 tall rounds up to 16 by 8 then trims to 11 and back to 16
	m := drawing(
		"..........#..",
		".............",
		"#............",
	)

	g := Rasterize(m, 'j', true)
	assertInvariants(t, g, true)
	assert.Equal(t, 16, g.Width)
	assert.Equal(t, 8, g.Height)
	assert.True(t, g.Bit(10, 0))
	assert.True(t, g.Bit(0, 2))
	assert.False(t, g.Bit(11, 0))

	// A narrow glyph trims down to one block
	g = Rasterize(drawing("#..................", "..................."), 'i', true)
	assertInvariants(t, g, true)
	assert.Equal(t, 8, g.Width)

	again := Rasterize(toImage(g), 'i', true)
	assert.Equal(t, g, again)
}

func TestRasterizeOffsetBounds(t *testing.T) {
	m := drawing(
		"....",
		".##.",
		"....",
	)
	sub := m.SubImage(image.Rect(1, 1, 3, 2))

	g := Rasterize(sub, 'x', false)
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, 1, g.Height)
	assert.Equal(t, []byte{0xc0}, g.Bits)
}

func TestBlank(t *testing.T) {
	tables := []struct {
		antialias     bool
		width, height int
	}{
		{false, 1, 1},
		{true, 8, 8},
	}

	for _, table := range tables {
		g := Blank('A', table.antialias)
		require.NotNil(t, g)
		assertInvariants(t, g, table.antialias)
		assert.Equal(t, table.width, g.Width)
		assert.Equal(t, table.height, g.Height)
		for _, b := range g.Bits {
			assert.Equal(t, byte(0), b)
		}
	}

	empty := Rasterize(image.NewGray(image.Rectangle{}), 'A', false)
	assert.Equal(t, Blank('A', false), empty)
}
