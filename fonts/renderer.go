package fonts

import (
	"errors"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const dpi = 72

// ErrMissingGlyph is returned when a font has no glyph for a character
var ErrMissingGlyph = errors.New("fonts: missing glyph")

type face struct {
	font *sfnt.Font
	face font.Face
}

// Renderer draws characters from the fonts in a Library. A Renderer is not
// safe for concurrent use.
type Renderer struct {
	library *Library
	faces   map[Descriptor]*face
	buf     sfnt.Buffer
}

// NewRenderer returns a Renderer using fonts from l.
func NewRenderer(l *Library) *Renderer {
	return &Renderer{
		library: l,
		faces:   make(map[Descriptor]*face),
	}
}

func (r *Renderer) face(d Descriptor) (*face, error) {
	if f, ok := r.faces[d]; ok {
		return f, nil
	}

	sf, err := r.library.Find(d)
	if err != nil {
		return nil, err
	}

	ff, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    d.Size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	f := &face{font: sf, face: ff}
	r.faces[d] = f
	return f, nil
}

// Render draws the character code in white on a black image. The image is
// twice the advance width wide to leave room for any overhang and as tall
// as the font's ascent plus descent, with the baseline at the ascent.
func (r *Renderer) Render(d Descriptor, code rune) (image.Image, error) {
	f, err := r.face(d)
	if err != nil {
		return nil, err
	}

	i, err := f.font.GlyphIndex(&r.buf, code)
	if err != nil {
		return nil, err
	}
	if i == 0 {
		return nil, ErrMissingGlyph
	}

	bounds, advance, ok := f.face.GlyphBounds(code)
	if !ok {
		return nil, ErrMissingGlyph
	}

	width := advance.Ceil()
	if bounds.Max.X.Ceil() > width {
		width = bounds.Max.X.Ceil()
	}
	metrics := f.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	dst := image.NewGray(image.Rect(0, 0, width*2, height))
	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: f.face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(string(code))

	return dst, nil
}

// Close releases every face opened by the Renderer.
func (r *Renderer) Close() error {
	var first error
	for d, f := range r.faces {
		if err := f.face.Close(); err != nil && first == nil {
			first = err
		}
		delete(r.faces, d)
	}
	return first
}
