/*
Package fonts finds fonts by family and style and renders single characters
from them as grayscale images.
*/
package fonts

import (
	"fmt"
	"strings"
)

// Style is a combination of the bold and italic flags.
type Style int

// Available styles
const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

var styleNames = [...]string{"Regular", "Bold", "Italic", "Bold Italic"}

func (s Style) String() string {
	if s < Regular || s > BoldItalic {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

func styleOf(bold, italic bool) Style {
	var s Style
	if bold {
		s |= Bold
	}
	if italic {
		s |= Italic
	}
	return s
}

// ParseStyle parses a style name such as "Bold Italic". Matching is case
// insensitive and anything without "bold" or "italic" is Regular.
func ParseStyle(name string) Style {
	name = strings.ToLower(name)
	return styleOf(strings.Contains(name, "bold"), strings.Contains(name, "italic") || strings.Contains(name, "oblique"))
}

// Descriptor selects a font and the size to render it at.
type Descriptor struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// Style returns the style of the descriptor.
func (d Descriptor) Style() Style {
	return styleOf(d.Bold, d.Italic)
}

// Scaled returns a copy of the descriptor with the size multiplied by n.
func (d Descriptor) Scaled(n int) Descriptor {
	d.Size *= float64(n)
	return d
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %s %gpt", d.Family, d.Style(), d.Size)
}
