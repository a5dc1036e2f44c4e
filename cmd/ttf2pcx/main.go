package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/humbertodias/ttf2pcx"
	"github.com/humbertodias/ttf2pcx/fonts"
	"github.com/humbertodias/ttf2pcx/pcx"
	"github.com/urfave/cli/v2"
)

const defaultDB = "fonts.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func dbExists(c *cli.Context) bool {
	_, err := os.Stat(c.String("db"))
	return err == nil
}

// loadLibrary returns a library with the built-in fonts, any font file given
// on the command line and, if it's still unknown, the requested family from
// the index. It returns the family to render with.
func loadLibrary(c *cli.Context, logger *log.Logger) (*fonts.Library, string, error) {
	l := fonts.NewLibrary()
	if err := l.AddBuiltin(); err != nil {
		return nil, "", err
	}

	family := c.String("font")
	if file := c.String("font-file"); file != "" {
		name, err := l.ParseFromPath(file)
		if err != nil {
			return nil, "", err
		}
		if !c.IsSet("font") {
			family = name
		}
	}

	if !l.Has(family) && dbExists(c) {
		db, err := ttf2pcx.NewFontDB(c.String("db"), logger)
		if err != nil {
			return nil, "", err
		}
		defer db.Close()

		if err := db.LoadFamily(l, family); err != nil && err != fonts.ErrUnknownFamily {
			return nil, "", err
		}
	}

	return l, family, nil
}

func export(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	first, last, err := ttf2pcx.ParseRange(c.String("start"), c.String("end"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	l, family, err := loadLibrary(c, logger)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	style := fonts.ParseStyle(c.String("style"))
	o := ttf2pcx.Options{
		Font: fonts.Descriptor{
			Family: family,
			Size:   c.Float64("size"),
			Bold:   style&fonts.Bold != 0,
			Italic: style&fonts.Italic != 0,
		},
		MinChar:   first,
		MaxChar:   last,
		Antialias: c.Bool("antialias"),
		MinColor:  c.Int("min-color"),
		MaxColor:  c.Int("max-color"),
	}

	r := fonts.NewRenderer(l)
	defer r.Close()

	file, err := ttf2pcx.New(r, logger).ExportFile(c.Args().First(), o)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	logger.Printf("Exported %s characters %#04x-%#04x to \"%s\"\n", o.Font, o.MinChar, o.MaxChar, file)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "ttf2pcx"
	app.Usage = "Convert TrueType and OpenType fonts to PCX sprite sheets"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TTF2PCX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to font index",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "export",
			Usage:       "Export a range of characters as a PCX sprite sheet",
			Description: "The .pcx extension is added to FILE if missing.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "font",
					Value: fonts.BuiltinFamily,
					Usage: "font family",
				},
				&cli.StringFlag{
					Name:  "font-file",
					Usage: "load the font from `FILE`",
				},
				&cli.Float64Flag{
					Name:  "size",
					Value: ttf2pcx.DefaultSize,
					Usage: "font size in points",
				},
				&cli.StringFlag{
					Name:  "style",
					Value: fonts.Regular.String(),
					Usage: "Regular, Bold, Italic or Bold Italic",
				},
				&cli.StringFlag{
					Name:  "start",
					Value: fmt.Sprintf("%#x", ttf2pcx.DefaultStart),
					Usage: "first character",
				},
				&cli.StringFlag{
					Name:  "end",
					Value: fmt.Sprintf("%#x", ttf2pcx.DefaultEnd),
					Usage: "last character",
				},
				&cli.BoolFlag{
					Name:  "antialias",
					Usage: "antialias glyphs with 8x8 supersampling",
				},
				&cli.IntFlag{
					Name:  "min-color",
					Value: ttf2pcx.MinColor,
					Usage: "palette index for the faintest antialiased pixel",
				},
				&cli.IntFlag{
					Name:  "max-color",
					Value: ttf2pcx.MaxColor,
					Usage: "palette index for a fully covered antialiased pixel",
				},
			},
			Action: export,
		},
		{
			Name:        "index",
			Usage:       "Scan filesystem and index font files",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := ttf2pcx.NewFontDB(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := db.Index(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List available font families",
			Description: "",
			Action: func(c *cli.Context) error {
				l := fonts.NewLibrary()
				if err := l.AddBuiltin(); err != nil {
					return cli.NewExitError(err, 1)
				}
				families := l.Families()

				if dbExists(c) {
					db, err := ttf2pcx.NewFontDB(c.String("db"), newLogger(c))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer db.Close()

					indexed, err := db.Families()
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					families = append(families, indexed...)
				}

				for _, family := range families {
					fmt.Println(family)
				}

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Show the dimensions of a PCX file",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				config, err := pcx.DecodeConfig(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var colors int
				if p, ok := config.ColorModel.(color.Palette); ok {
					colors = len(p)
				}

				fmt.Printf("%s: %dx%d, %d colors\n", c.Args().First(), config.Width, config.Height, colors)
				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to PCX",
			Description: "Images with more than 256 colors are quantized.",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				in, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer in.Close()

				m, format, err := image.Decode(in)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				newLogger(c).Printf("Decoded %s image %v\n", format, m.Bounds())

				out, err := os.Create(ttf2pcx.WithExtension(c.Args().Get(1)))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := pcx.Encode(out, m); err != nil {
					out.Close()
					return cli.NewExitError(err, 1)
				}

				if err := out.Close(); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
