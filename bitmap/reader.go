package bitmap

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
)

func init() {
	image.RegisterFormat("bmp", "BM", Decode, DecodeConfig)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	fh FileHeader
	ih InfoHeader

	width, height int
	topDown       bool
	size          int64

	image *Bitmap

	tmp [headerLen]byte
}

func (d *decoder) readHeaders() error {
	if err := readFull(d.r, d.tmp[:fileHeaderLen]); err != nil {
		return truncated("file header", err)
	}
	if err := d.fh.UnmarshalBinary(d.tmp[:fileHeaderLen]); err != nil {
		return err
	}
	if d.fh.Type != signature {
		return FormatError("not a bitmap")
	}

	if err := readFull(d.r, d.tmp[fileHeaderLen:]); err != nil {
		return truncated("info header", err)
	}
	return d.ih.UnmarshalBinary(d.tmp[fileHeaderLen:])
}

func (d *decoder) checkHeaders() error {
	if d.ih.Size < infoHeaderLen {
		return FormatError(fmt.Sprintf("info header size %d", d.ih.Size))
	}
	if d.ih.BitCount != bitsPerPixel {
		return UnsupportedError(fmt.Sprintf("%d bits per pixel", d.ih.BitCount))
	}
	if d.ih.Compression != compressionNone {
		return UnsupportedError(fmt.Sprintf("compression method %d", d.ih.Compression))
	}
	if d.ih.Width < 0 {
		return FormatError(fmt.Sprintf("negative width %d", d.ih.Width))
	}
	if d.ih.Height == math.MinInt32 {
		return FormatError(fmt.Sprintf("height %d", d.ih.Height))
	}
	if d.fh.OffBits < headerLen {
		return FormatError(fmt.Sprintf("pixel data offset %d", d.fh.OffBits))
	}

	d.width = int(d.ih.Width)
	d.height = int(d.ih.Height)
	if d.height < 0 {
		d.topDown = true
		d.height = -d.height
	}

	n := uint64(RowStride(d.width)) * uint64(d.height)
	if n > math.MaxUint32 {
		return FormatError(fmt.Sprintf("dimensions %dx%d", d.width, d.height))
	}
	if d.ih.SizeImage != 0 && uint64(d.ih.SizeImage) != n {
		return FormatError(fmt.Sprintf("image size %d, expected %d", d.ih.SizeImage, n))
	}
	d.size = int64(n)
	return nil
}

func (d *decoder) readPixels() error {
	// Skip anything between the headers and the pixel data
	if skip := int64(d.fh.OffBits) - headerLen; skip > 0 {
		if n, err := io.CopyN(io.Discard, d.r, skip); n != skip {
			return truncated("header gap", err)
		}
	}

	// Grows with the input, never ahead of it
	var buf bytes.Buffer
	if n, err := io.CopyN(&buf, d.r, d.size); n != d.size {
		return truncated("pixel data", err)
	}
	data := buf.Bytes()

	stride := RowStride(d.width)

	d.image = New(d.width, d.height)
	if d.size == 0 {
		return nil
	}
	for y := 0; y < d.height; y++ {
		row := data[y*stride : y*stride+d.width*bytesPerPixel]
		dy := d.height - 1 - y
		if d.topDown {
			dy = y
		}
		pix := d.image.pix[dy*d.width : (dy+1)*d.width]
		for x := range pix {
			i := x * bytesPerPixel
			pix[x] = RGB(row[i+2], row[i+1], row[i])
		}
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeaders(); err != nil {
		return err
	}

	if err := d.checkHeaders(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	return d.readPixels()
}

// Decode reads a bitmap from r and returns it as an image.Image. The
// concrete type is *Bitmap.
func Decode(r io.Reader) (image.Image, error) {
	b, err := DecodeBitmap(r)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeBitmap reads a bitmap from r.
func DecodeBitmap(r io.Reader) (*Bitmap, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a bitmap without
// decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: PixelModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}

// ReadHeaders reads and validates both headers from r, leaving r positioned
// directly after the info header.
func ReadHeaders(r io.Reader) (FileHeader, InfoHeader, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return FileHeader{}, InfoHeader{}, err
	}
	return d.fh, d.ih, nil
}

// UnmarshalBinary decodes a complete bitmap file into b.
func (b *Bitmap) UnmarshalBinary(data []byte) error {
	m, err := DecodeBitmap(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*b = *m
	return nil
}
