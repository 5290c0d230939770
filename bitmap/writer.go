package bitmap

import (
	"image"
	"io"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(b *Bitmap) error {
	fh, ih, err := newHeaders(b.width, b.height)
	if err != nil {
		return err
	}

	var h [headerLen]byte
	fh.put(h[:fileHeaderLen])
	ih.put(h[fileHeaderLen:])
	if _, err := e.w.Write(h[:]); err != nil {
		return err
	}

	_, err = e.w.Write(pixelData(b))
	return err
}

// pixelData lays out the pixels of b bottom-up in BGR order with each row
// padded to RowStride bytes.
func pixelData(b *Bitmap) []byte {
	stride := RowStride(b.width)
	data := make([]byte, ImageSize(b.width, b.height))
	for y := 0; y < b.height; y++ {
		row := data[(b.height-1-y)*stride:]
		for x, p := range b.pix[y*b.width : (y+1)*b.width] {
			row[x*bytesPerPixel+0] = p.B()
			row[x*bytesPerPixel+1] = p.G()
			row[x*bytesPerPixel+2] = p.R()
		}
	}
	return data
}

// Encode writes the Image m to w as an uncompressed 24-bit bitmap. Any alpha
// channel is discarded.
func Encode(w io.Writer, m image.Image) error {
	b, ok := m.(*Bitmap)
	if !ok {
		b = FromImage(m)
	}

	e := encoder{w: w}

	return e.encode(b)
}

// MarshalBinary encodes b into a complete bitmap file.
func (b *Bitmap) MarshalBinary() ([]byte, error) {
	fh, ih, err := newHeaders(b.width, b.height)
	if err != nil {
		return nil, err
	}

	data := make([]byte, headerLen, int(fh.Size))
	fh.put(data[:fileHeaderLen])
	ih.put(data[fileHeaderLen:])

	return append(data, pixelData(b)...), nil
}
