/*
Package ttf2pcx converts a range of characters from a font into a single
PCX sprite sheet, optionally antialiased.

Each character is rendered, rasterized to a packed bitmap and laid out in a
grid 16 cells wide. The result is written as an 8-bit run-length encoded PCX
file whose palette marks the glyph boxes, the grid and every unused color
index so the sheet can be cut up again by a font grabber.
*/
package ttf2pcx

import (
	"log"

	"github.com/humbertodias/ttf2pcx/glyph"
)

// Converter renders characters from a glyph source and exports them.
type Converter struct {
	source glyph.Source
	logger *log.Logger
}

// New returns a Converter drawing characters from source.
func New(source glyph.Source, logger *log.Logger) *Converter {
	return &Converter{
		source: source,
		logger: logger,
	}
}
