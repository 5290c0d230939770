package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/bmp24"
	"github.com/bodgit/bmp24/bitmap"
	"github.com/urfave/cli/v2"
)

const defaultDB = "bmp24.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var colorsFlag = &cli.IntFlag{
	Name:  "colors",
	Usage: "reduce each image to at most `N` colors",
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newConverter(c *cli.Context, store bool) (*bmp24.Converter, func(), error) {
	var db *bmp24.DB
	done := func() {}
	if store {
		var err error
		if db, err = bmp24.NewDB(c.String("db")); err != nil {
			return nil, nil, err
		}
		done = func() { db.Close() }
	}

	converter := bmp24.New(db, newLogger(c))
	converter.Colors = c.Int("colors")

	return converter, done, nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	file := c.Args().First()
	f, err := os.Open(file)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	fh, ih, err := bitmap.ReadHeaders(f)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("%s: %w", file, err), 1)
	}

	width := int(ih.Width)
	height := int(ih.Height)
	order := "bottom-up"
	if height < 0 {
		height = -height
		order = "top-down"
	}
	stride := bitmap.RowStride(width)

	fmt.Printf("Filename:    %s\n", file)
	fmt.Printf("Filesize:    %d bytes\n", fh.Size)
	fmt.Printf("PixelOffset: %d bytes\n", fh.OffBits)
	fmt.Printf("HeaderSize:  %d bytes\n", ih.Size)
	fmt.Printf("Width:       %d px\n", width)
	fmt.Printf("Height:      %d px (%s)\n", height, order)
	fmt.Printf("BitCount:    %d bits\n", ih.BitCount)
	fmt.Printf("ImageSize:   %d bytes\n", bitmap.ImageSize(width, height))
	fmt.Printf("Stride:      %d bytes\n", stride)
	fmt.Printf("Padding:     %d bytes\n", stride-width*3)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bmp24"
	app.Usage = "24-bit bitmap conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BMP24_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Print the headers of a bitmap",
			Description: "",
			ArgsUsage:   "FILE",
			Action:      info,
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to a bitmap",
			Description: "If DESTINATION ends in .png the source is converted to PNG instead.",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags:       []cli.Flag{colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				converter, done, err := newConverter(c, false)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer done()

				if err := converter.ConvertFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image in a directory tree",
			Description: "",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Flags: []cli.Flag{
				colorsFlag,
				&cli.BoolFlag{
					Name:  "store",
					Usage: "record each bitmap in the database",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				converter, done, err := newConverter(c, c.Bool("store"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer done()

				if err := converter.Scan(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Convert an image and record it in the database",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       []cli.Flag{colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				converter, done, err := newConverter(c, true)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer done()

				sha, err := converter.Import(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Println(sha)

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Write a bitmap from the database to a file",
			Description: "",
			ArgsUsage:   "SHA1 FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := bmp24.NewDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				var b bytes.Buffer
				if err := db.Export(c.Args().Get(0), &b); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := os.WriteFile(c.Args().Get(1), b.Bytes(), 0666); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List the bitmaps in the database",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := bmp24.NewDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				entries, err := db.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, e := range entries {
					fmt.Printf("%s %5dx%-5d %8d %s\n", e.SHA1, e.Width, e.Height, e.Size, e.Name)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
