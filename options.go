package ttf2pcx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/humbertodias/ttf2pcx/fonts"
	"github.com/humbertodias/ttf2pcx/sheet"
)

// Limits and defaults for Options
const (
	MinCode = 1
	MaxCode = 65535

	MinColor = 1
	MaxColor = 254

	DefaultStart = 0x20
	DefaultEnd   = 0x7f
	DefaultSize  = 12
)

var (
	// ErrStartRange is returned when the first character isn't a number
	// between MinCode and MaxCode
	ErrStartRange = errors.New("starting character must be in range 1-65535")
	// ErrEndRange is returned when the last character isn't a number
	// between MinCode and MaxCode
	ErrEndRange = errors.New("end character must be in range 1-65535")
	// ErrEndBeforeStart is returned when the range is backwards
	ErrEndBeforeStart = errors.New("start character greater than end character")
	// ErrColorRange is returned when an antialiasing color is not between
	// MinColor and MaxColor
	ErrColorRange = errors.New("colors must be in range 1-254")
	// ErrFontSize is returned when the font size isn't positive
	ErrFontSize = errors.New("font size must be positive")
)

// Options describes a single export.
type Options struct {
	Font      fonts.Descriptor
	MinChar   int
	MaxChar   int
	Antialias bool
	MinColor  int
	MaxColor  int
}

// DefaultOptions returns the options used when nothing else is specified.
func DefaultOptions() Options {
	return Options{
		Font: fonts.Descriptor{
			Family: fonts.BuiltinFamily,
			Size:   DefaultSize,
		},
		MinChar:  DefaultStart,
		MaxChar:  DefaultEnd,
		MinColor: MinColor,
		MaxColor: MaxColor,
	}
}

func parseCode(s string) (int, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 0, 32)
	if err != nil || n < MinCode || n > MaxCode {
		return 0, false
	}
	return int(n), true
}

// ParseRange parses the first and last character of a range. Both may be
// written in decimal, hexadecimal with a 0x prefix or octal with a leading
// zero.
func ParseRange(start, end string) (int, int, error) {
	first, ok := parseCode(start)
	if !ok {
		return 0, 0, ErrStartRange
	}
	last, ok := parseCode(end)
	if !ok {
		return 0, 0, ErrEndRange
	}
	if last < first {
		return 0, 0, ErrEndBeforeStart
	}
	return first, last, nil
}

func validColor(c int) bool {
	return c >= MinColor && c <= MaxColor
}

// Validate checks the options before anything is rendered.
func (o Options) Validate() error {
	switch {
	case o.MinChar < MinCode || o.MinChar > MaxCode:
		return ErrStartRange
	case o.MaxChar < MinCode || o.MaxChar > MaxCode:
		return ErrEndRange
	case o.MaxChar < o.MinChar:
		return ErrEndBeforeStart
	case o.Antialias && (!validColor(o.MinColor) || !validColor(o.MaxColor)):
		return ErrColorRange
	case !(o.Font.Size > 0):
		return ErrFontSize
	}
	return nil
}

func (o Options) sheet() sheet.Options {
	return sheet.Options{
		Antialias: o.Antialias,
		MinColor:  o.MinColor,
		MaxColor:  o.MaxColor,
	}
}
