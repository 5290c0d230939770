package bitmap

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeaders(t *testing.T) {
	fh, ih, err := newHeaders(45, 30)
	require.NoError(t, err)

	assert.Equal(t, FileHeader{
		Type:    [2]byte{'B', 'M'},
		Size:    54 + 4080,
		OffBits: 54,
	}, fh)
	assert.Equal(t, InfoHeader{
		Size:      40,
		Width:     45,
		Height:    30,
		Planes:    1,
		BitCount:  24,
		SizeImage: 4080,
	}, ih)

	_, _, err = newHeaders(math.MaxInt32+1, 1)
	assert.IsType(t, UnsupportedError(""), err)
	_, _, err = newHeaders(math.MaxInt32/3, 16)
	assert.IsType(t, UnsupportedError(""), err)
}

func TestFileHeaderBinary(t *testing.T) {
	in := FileHeader{
		Type:      [2]byte{'B', 'M'},
		Size:      0x01020304,
		Reserved1: 0x0506,
		Reserved2: 0x0708,
		OffBits:   0x090a0b0c,
	}
	b, err := in.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		'B', 'M',
		0x04, 0x03, 0x02, 0x01,
		0x06, 0x05,
		0x08, 0x07,
		0x0c, 0x0b, 0x0a, 0x09,
	}, b)

	var out FileHeader
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, in, out)

	err = out.UnmarshalBinary(b[:13])
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestInfoHeaderBinary(t *testing.T) {
	in := InfoHeader{
		Size:          40,
		Width:         2,
		Height:        -3,
		Planes:        1,
		BitCount:      24,
		Compression:   0,
		SizeImage:     24,
		XPelsPerMeter: 2835,
		YPelsPerMeter: -1,
		ClrUsed:       7,
		ClrImportant:  8,
	}
	b, err := in.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 40)

	assert.Equal(t, []byte{40, 0, 0, 0}, b[0:4])
	assert.Equal(t, []byte{2, 0, 0, 0}, b[4:8])
	assert.Equal(t, []byte{0xfd, 0xff, 0xff, 0xff}, b[8:12])
	assert.Equal(t, []byte{1, 0}, b[12:14])
	assert.Equal(t, []byte{24, 0}, b[14:16])
	assert.Equal(t, []byte{24, 0, 0, 0}, b[20:24])
	assert.Equal(t, []byte{0x13, 0x0b, 0, 0}, b[24:28])
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b[28:32])
	assert.Equal(t, []byte{7, 0, 0, 0}, b[32:36])
	assert.Equal(t, []byte{8, 0, 0, 0}, b[36:40])

	var out InfoHeader
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, in, out)

	err = out.UnmarshalBinary(b[:39])
	var te *TruncatedError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "info header", te.Section)
}
