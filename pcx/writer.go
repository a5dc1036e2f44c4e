package pcx

import (
	"bufio"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

var errTooLarge = errors.New("pcx: image is too large")

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) writeHeader(m *image.Paletted) error {
	b := m.Bounds()
	return binary.Write(e.w, binary.LittleEndian, newHeader(b.Dx(), b.Dy()))
}

func (e *encoder) writeRun(n int, v uint8) error {
	// A lone pixel only needs the count byte if its value could be
	// mistaken for one
	if n > 1 || v&runMask == runMask {
		if err := e.w.WriteByte(runMask | uint8(n)); err != nil {
			return err
		}
	}
	return e.w.WriteByte(v)
}

func (e *encoder) writeScanline(row []uint8) error {
	var n int
	var v uint8
	for _, c := range row {
		switch {
		case n == 0:
			n, v = 1, c
		case c != v || n >= maxRun:
			if err := e.writeRun(n, v); err != nil {
				return err
			}
			n, v = 1, c
		default:
			n++
		}
	}
	if n > 0 {
		return e.writeRun(n, v)
	}
	return nil
}

func (e *encoder) writePalette(p color.Palette) error {
	if err := e.w.WriteByte(paletteMarker); err != nil {
		return err
	}

	var tmp [3]byte
	for i := 0; i < paletteSize; i++ {
		tmp = [3]byte{}
		if i < len(p) {
			r, g, b, _ := p[i].RGBA()
			tmp[0], tmp[1], tmp[2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
		}
		if _, err := e.w.Write(tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encode(m *image.Paletted) error {
	if err := e.writeHeader(m); err != nil {
		return err
	}

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		if err := e.writeScanline(m.Pix[i : i+b.Dx()]); err != nil {
			return err
		}
	}

	if err := e.writePalette(m.Palette); err != nil {
		return err
	}

	return e.w.Flush()
}

// Encode writes the Image m to w in PCX format. Paletted images are written
// as-is with their palette padded to 256 colors, anything else is first
// quantized down to 256 colors.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		return errTooLarge
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= paletteSize {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}
	if pm == nil || len(pm.Palette) > paletteSize {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, paletteSize), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(pm)
}
