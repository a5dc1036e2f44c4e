package ttf2pcx

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/humbertodias/ttf2pcx/fonts"
	"github.com/humbertodias/ttf2pcx/glyph"
	"github.com/humbertodias/ttf2pcx/pcx"
	"github.com/humbertodias/ttf2pcx/sheet"
)

// Extension is appended to any output filename that doesn't already end
// with it
const Extension = ".pcx"

// WithExtension returns filename with Extension appended unless it already
// has it, ignoring case.
func WithExtension(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), Extension) {
		return filename
	}
	return filename + Extension
}

// Render rasterizes every character in the range of o, in order. A
// character that can't be rendered is replaced with a blank glyph rather
// than stopping the export, only an unknown font family is fatal.
func (c *Converter) Render(o Options) ([]*glyph.Glyph, error) {
	d := o.Font
	if o.Antialias {
		d = d.Scaled(glyph.Supersample)
	}

	glyphs := make([]*glyph.Glyph, 0, o.MaxChar-o.MinChar+1)
	for code := o.MinChar; code <= o.MaxChar; code++ {
		m, err := c.source.Render(d, rune(code))
		if err != nil {
			if errors.Is(err, fonts.ErrUnknownFamily) {
				return nil, err
			}
			c.logger.Printf("Unable to render %#04x with %s: %s\n", code, d, err)
			glyphs = append(glyphs, glyph.Blank(rune(code), o.Antialias))
			continue
		}
		glyphs = append(glyphs, glyph.Rasterize(m, rune(code), o.Antialias))
	}

	return glyphs, nil
}

// Export renders the characters described by o and writes them to w as a
// PCX sprite sheet.
func (c *Converter) Export(w io.Writer, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}

	glyphs, err := c.Render(o)
	if err != nil {
		return err
	}

	s := sheet.Assemble(glyphs, o.sheet())
	c.logger.Printf("Assembled %d glyphs into %dx%d sheet with %dx%d cells\n", len(glyphs), s.Width, s.Height, s.CellWidth, s.CellHeight)

	return pcx.Encode(w, s.Image(sheet.Palette(o.sheet())))
}

// ExportFile is like Export but writes to a newly created file, adding the
// .pcx extension if necessary. It returns the name of the file written. On
// failure nothing is left behind.
func (c *Converter) ExportFile(filename string, o Options) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}

	filename = WithExtension(filename)

	f, err := os.Create(filename)
	if err != nil {
		return "", &DestinationError{Path: filename, Err: err}
	}

	if err := c.Export(f, o); err != nil {
		f.Close()
		os.Remove(filename)
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(filename)
		return "", err
	}

	return filename, nil
}
