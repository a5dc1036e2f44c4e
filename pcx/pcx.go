/*
Package pcx implements a decoder and encoder for the 8-bit, single plane,
run-length encoded variant of the ZSoft PCX image format.

A file is written as a 128 byte header with all multi-byte values stored
little-endian, followed by the run-length encoded scanlines, a single byte
with the value 12 and finally a 256 color palette of 768 bytes, three per
color.

Each run of identical pixels is written as a count byte with the two top
bits set followed by the pixel value. A run of a single pixel whose value
doesn't have the two top bits set is written as just the value. No run is
longer than 63 pixels and no run crosses a scanline.
*/
package pcx

const (
	manufacturer  = 10
	version       = 5
	encodingRLE   = 1
	bitsPerPixel  = 8
	planes        = 1
	paletteInfo   = 1
	hDPI          = 320
	vDPI          = 200
	headerSize    = 128
	egaColors     = 16
	fillerSize    = 54
	runMask       = 0xc0
	maxRun        = 0x3f
	paletteMarker = 12
	paletteSize   = 256
	maxDimension  = 1<<16 - 1
)

type header struct {
	Manufacturer uint8
	Version      uint8
	Encoding     uint8
	BitsPerPixel uint8
	XMin, YMin   uint16
	XMax, YMax   uint16
	HDPI, VDPI   uint16
	ColorMap     [egaColors * 3]uint8
	Reserved     uint8
	Planes       uint8
	BytesPerLine uint16
	PaletteInfo  uint16
	HScreenSize  uint16
	VScreenSize  uint16
	Filler       [fillerSize]uint8
}

func newHeader(width, height int) *header {
	h := &header{
		Manufacturer: manufacturer,
		Version:      version,
		Encoding:     encodingRLE,
		BitsPerPixel: bitsPerPixel,
		XMax:         uint16(width - 1),
		YMax:         uint16(height - 1),
		HDPI:         hDPI,
		VDPI:         vDPI,
		Planes:       planes,
		BytesPerLine: uint16(width),
		PaletteInfo:  paletteInfo,
		HScreenSize:  uint16(width),
		VScreenSize:  uint16(height),
	}

	// The 16 color EGA palette is unused at 8 bits per pixel but is
	// expected to hold a grayscale ramp
	for c := 0; c < egaColors; c++ {
		h.ColorMap[c*3+0] = uint8(c)
		h.ColorMap[c*3+1] = uint8(c)
		h.ColorMap[c*3+2] = uint8(c)
	}

	return h
}
