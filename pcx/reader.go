package pcx

import (
	"bufio"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	errNotEnough    = errors.New("pcx: not enough image data")
	errUnsupported  = errors.New("pcx: unsupported format")
	errNoPalette    = errors.New("pcx: missing palette")
	errBadDimension = errors.New("pcx: invalid dimensions")
)

func init() {
	image.RegisterFormat("pcx", "\x0a?\x01", Decode, DecodeConfig)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r *bufio.Reader
	h header

	width, height int

	image   *image.Paletted
	palette color.Palette

	// Scanlines as stored, each BytesPerLine long
	pix []byte
}

func (d *decoder) readHeader() error {
	if err := binary.Read(d.r, binary.LittleEndian, &d.h); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}

	if d.h.Manufacturer != manufacturer || d.h.Encoding != encodingRLE {
		return errUnsupported
	}
	if d.h.BitsPerPixel != bitsPerPixel || d.h.Planes != planes {
		return errUnsupported
	}

	d.width = int(d.h.XMax) - int(d.h.XMin) + 1
	d.height = int(d.h.YMax) - int(d.h.YMin) + 1
	if d.width <= 0 || d.height <= 0 || int(d.h.BytesPerLine) < d.width {
		return errBadDimension
	}

	return nil
}

func (d *decoder) readScanlines() error {
	d.pix = make([]byte, int(d.h.BytesPerLine)*d.height)
	for i := 0; i < len(d.pix); {
		v, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		n := 1
		if v&runMask == runMask {
			n = int(v &^ runMask)
			if v, err = d.r.ReadByte(); err != nil {
				return err
			}
		}
		// Some encoders let a run cross into the next scanline
		if i+n > len(d.pix) {
			n = len(d.pix) - i
		}
		for j := 0; j < n; j++ {
			d.pix[i+j] = v
		}
		i += n
	}
	return nil
}

func (d *decoder) readPalette() error {
	marker, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return errNoPalette
		}
		return err
	}
	if marker != paletteMarker {
		return errNoPalette
	}

	var tmp [paletteSize * 3]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		return err
	}

	d.palette = make(color.Palette, paletteSize)
	for i := range d.palette {
		d.palette[i] = color.RGBA{tmp[i*3+0], tmp[i*3+1], tmp[i*3+2], 0xff}
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = bufio.NewReader(r)

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if err := d.readScanlines(); err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if err := d.readPalette(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	d.image = image.NewPaletted(image.Rect(0, 0, d.width, d.height), d.palette)

	stride := int(d.h.BytesPerLine)
	for y := 0; y < d.height; y++ {
		copy(d.image.Pix[y*d.image.Stride:y*d.image.Stride+d.width], d.pix[y*stride:])
	}

	return nil
}

// Decode reads a PCX image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a PCX image without
// building the image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.palette,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
