package bmp24

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/bmp24/bitmap"
	"github.com/ericpauley/go-quantize/quantize"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var errNoDB = errors.New("no database")

// Extensions lists the file extensions of the formats that can be converted.
var Extensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

// Convert returns m as a Bitmap, reducing it to c.Colors colors first if set.
func (c *Converter) Convert(m image.Image) *bitmap.Bitmap {
	if c.Colors > 0 {
		m = reduceColors(m, c.Colors)
	}
	return bitmap.FromImage(m)
}

func reduceColors(m image.Image, colors int) image.Image {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func decodeFile(file string) (image.Image, []byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}

	sum := sha1.Sum(data)
	return m, sum[:], nil
}

func writeFile(file string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err = fn(w); err != nil {
		return err
	}
	return w.Flush()
}

// ConvertFile converts the image in src to a bitmap written to dst. If dst
// has a .png extension the image is written as a PNG instead, which allows
// bitmaps to be converted back. c.Colors applies to both.
func (c *Converter) ConvertFile(src, dst string) error {
	m, _, err := decodeFile(src)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(dst), ".png") {
		if c.Colors > 0 {
			m = reduceColors(m, c.Colors)
		}
		return writeFile(dst, func(w io.Writer) error {
			return png.Encode(w, m)
		})
	}

	return writeFile(dst, func(w io.Writer) error {
		return bitmap.Encode(w, c.Convert(m))
	})
}

// Import converts the image in file and records it in the database,
// returning the SHA-1 of file it is stored under.
func (c *Converter) Import(file string) (string, error) {
	if c.db == nil {
		return "", errNoDB
	}

	m, sum, err := decodeFile(file)
	if err != nil {
		return "", err
	}

	sha := fmt.Sprintf("%X", sum)
	if _, err := c.db.Put(sha, filepath.Base(file), c.Convert(m)); err != nil {
		return "", err
	}
	c.logger.Printf("Imported \"%s\" as %s\n", file, sha)

	return sha, nil
}
