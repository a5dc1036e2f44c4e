package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// BuiltinFamily is the family name of the fonts added by AddBuiltin
const BuiltinFamily = "Go"

var (
	// ErrUnknownFamily is returned when no font of a family has been added
	ErrUnknownFamily = errors.New("fonts: unknown font family")

	errNoFamily = errors.New("fonts: font has no family name")
)

type family struct {
	name  string
	faces [BoldItalic + 1]*sfnt.Font
}

// Library is a collection of fonts grouped by family name. Family names are
// matched case insensitively.
type Library struct {
	families map[string]*family
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{
		families: make(map[string]*family),
	}
}

// HasValidExtension reports whether path looks like a font file the
// library can parse.
func HasValidExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// Describe returns the family name and style of f.
func Describe(f *sfnt.Font) (string, Style, error) {
	var b sfnt.Buffer
	name, err := f.Name(&b, sfnt.NameIDFamily)
	if err != nil {
		if err == sfnt.ErrNotFound {
			return "", Regular, errNoFamily
		}
		return "", Regular, err
	}
	sub, err := f.Name(&b, sfnt.NameIDSubfamily)
	if err != nil && err != sfnt.ErrNotFound {
		return "", Regular, err
	}
	return name, ParseStyle(sub), nil
}

// Add adds f to the library, replacing any font already present with the
// same family and style.
func (l *Library) Add(f *sfnt.Font) (string, Style, error) {
	name, style, err := Describe(f)
	if err != nil {
		return "", Regular, err
	}

	key := strings.ToLower(name)
	fam, ok := l.families[key]
	if !ok {
		fam = &family{name: name}
		l.families[key] = fam
	}
	fam.faces[style] = f

	return name, style, nil
}

// ParseFromBytes parses a font and adds it to the library, returning its
// family name. The bytes must not be modified afterwards.
func (l *Library) ParseFromBytes(b []byte) (string, error) {
	f, err := sfnt.Parse(b)
	if err != nil {
		return "", err
	}
	name, _, err := l.Add(f)
	return name, err
}

// ParseFromPath parses the font file at path and adds it to the library,
// returning its family name.
func (l *Library) ParseFromPath(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return l.ParseFromBytes(b)
}

// ParseAllFromPath adds every font file directly inside dir, returning how
// many were added.
func (l *Library) ParseAllFromPath(dir string) (int, error) {
	var added int
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !HasValidExtension(entry.Name()) {
			continue
		}
		if _, err := l.ParseFromPath(filepath.Join(dir, entry.Name())); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// AddBuiltin adds the four styles of the Go font family.
func (l *Library) AddBuiltin() error {
	for _, b := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		if _, err := l.ParseFromBytes(b); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether any font of the family has been added.
func (l *Library) Has(name string) bool {
	_, ok := l.families[strings.ToLower(name)]
	return ok
}

// Families returns the names of all families in the library, sorted.
func (l *Library) Families() []string {
	names := make([]string, 0, len(l.families))
	for _, fam := range l.families {
		names = append(names, fam.name)
	}
	sort.Strings(names)
	return names
}

// Find returns the font best matching d. If the family doesn't have the
// requested style, the regular style is used, failing that any style.
func (l *Library) Find(d Descriptor) (*sfnt.Font, error) {
	fam, ok := l.families[strings.ToLower(d.Family)]
	if !ok {
		return nil, ErrUnknownFamily
	}
	if f := fam.faces[d.Style()]; f != nil {
		return f, nil
	}
	if f := fam.faces[Regular]; f != nil {
		return f, nil
	}
	for _, f := range fam.faces {
		if f != nil {
			return f, nil
		}
	}
	return nil, ErrUnknownFamily
}
