package bmp24

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/bmp24/bitmap"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

func testImage(w, h int, seed uint8) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.NRGBA{uint8(x*16) + seed, uint8(y*16) + seed, seed, 0xff})
		}
	}
	return m
}

func writePNG(t *testing.T, file string, m image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0777))
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func readBitmap(t *testing.T, file string) *bitmap.Bitmap {
	t.Helper()
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	b, err := bitmap.DecodeBitmap(f)
	require.NoError(t, err)
	return b
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
