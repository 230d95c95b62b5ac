package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/worldbox"
	"github.com/bodgit/worldbox/preview"
	"github.com/bodgit/worldbox/save"
	"github.com/bodgit/worldbox/tile"
	"github.com/urfave/cli/v2"
)

const defaultDB = "palettes.db"

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

// colorTable resolves the color table to convert with: an explicit CSV file
// wins, then a named palette from the database, then the built-in table.
func colorTable(c *cli.Context, db *worldbox.PaletteDB) (*tile.ColorTable, error) {
	if file := c.String("table"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return worldbox.ReadColorTable(f)
	}

	if name := c.String("palette"); name != "" {
		return db.Table(name)
	}

	return tile.DefaultTable(), nil
}

func options(c *cli.Context) (worldbox.Options, error) {
	var opts worldbox.Options

	if file := c.String("config"); file != "" {
		var err error
		if opts, err = worldbox.LoadOptions(file); err != nil {
			return opts, err
		}
	}

	if c.IsSet("tolerance") {
		opts.Tolerance = c.Int("tolerance")
	}
	if c.IsSet("name") {
		opts.Stats.PlayerName = c.String("name")
	}

	return opts, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "wboxc"
	app.Usage = "Convert images into WorldBox save documents"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"WBOXC_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to palette database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	convertFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "table",
			Usage: "color table CSV file",
		},
		&cli.StringFlag{
			Name:  "palette",
			Usage: "stored palette name",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "conversion options YAML file",
		},
		&cli.IntFlag{
			Name:  "tolerance",
			Usage: "color matching tolerance, 0-100",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "player name stored in the save",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert one image into a save document",
			Description: "",
			ArgsUsage:   "IMAGE",
			Flags: append(convertFlags,
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, defaults to the image name with a " + save.Extension + " extension",
				},
				&cli.StringFlag{
					Name:  "preview",
					Usage: "also write a PNG preview of the classified map",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := worldbox.NewPaletteDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				table, err := colorTable(c, db)
				if err != nil {
					return cli.Exit(err, 1)
				}

				opts, err := options(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				in := c.Args().First()
				out := c.String("output")
				if out == "" {
					out = strings.TrimSuffix(in, filepath.Ext(in)) + save.Extension
				}

				w := worldbox.New(db, newLogger(c))
				if err := w.ConvertFile(in, out, table, opts); err != nil {
					return cli.Exit(err, 1)
				}

				if p := c.String("preview"); p != "" {
					if err := writePreview(in, p, table, opts); err != nil {
						return cli.Exit(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags:       convertFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := worldbox.NewPaletteDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				table, err := colorTable(c, db)
				if err != nil {
					return cli.Exit(err, 1)
				}

				opts, err := options(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				w := worldbox.New(db, newLogger(c))
				if err := w.Scan(c.Args().First(), table, opts); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Import a color table CSV as a named palette",
			Description: "",
			ArgsUsage:   "NAME FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := worldbox.NewPaletteDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.ImportCSV(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "palettes",
			Usage:       "List stored palettes",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := worldbox.NewPaletteDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				names, err := db.Palettes()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, name := range names {
					fmt.Println(name)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func writePreview(in, out string, table *tile.ColorTable, opts worldbox.Options) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	_, g, _, err := worldbox.Convert(m, table, opts)
	if err != nil {
		return err
	}

	p, err := os.Create(out)
	if err != nil {
		return err
	}
	defer p.Close()

	return preview.Encode(p, g, table)
}
