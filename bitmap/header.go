package bitmap

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FileHeader is the BITMAPFILEHEADER structure at the start of every file.
type FileHeader struct {
	Type      [2]byte // Always "BM"
	Size      uint32  // Size of the whole file in bytes
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // Offset from the start of the file to the pixel data
}

// InfoHeader is the BITMAPINFOHEADER structure describing the geometry and
// format of the pixel data.
type InfoHeader struct {
	Size          uint32 // Size of this structure, 40
	Width         int32
	Height        int32 // Negative for top-down pixel data
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32 // Size of the pixel data in bytes, may be 0
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// newHeaders derives both headers for a bottom-up width by height image.
func newHeaders(width, height int) (FileHeader, InfoHeader, error) {
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return FileHeader{}, InfoHeader{}, UnsupportedError(fmt.Sprintf("dimensions %dx%d", width, height))
	}
	size := uint64(RowStride(width)) * uint64(height)
	if size+headerLen > math.MaxUint32 {
		return FileHeader{}, InfoHeader{}, UnsupportedError(fmt.Sprintf("image size %d", size))
	}

	fh := FileHeader{
		Type:    signature,
		Size:    uint32(headerLen + size),
		OffBits: headerLen,
	}
	ih := InfoHeader{
		Size:      infoHeaderLen,
		Width:     int32(width),
		Height:    int32(height),
		Planes:    1,
		BitCount:  bitsPerPixel,
		SizeImage: uint32(size),
	}
	return fh, ih, nil
}

// MarshalBinary encodes the header into its 14 byte form.
func (h *FileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, fileHeaderLen)
	h.put(b)
	return b, nil
}

func (h *FileHeader) put(b []byte) {
	copy(b[0:2], h.Type[:])
	binary.LittleEndian.PutUint32(b[2:6], h.Size)
	binary.LittleEndian.PutUint16(b[6:8], h.Reserved1)
	binary.LittleEndian.PutUint16(b[8:10], h.Reserved2)
	binary.LittleEndian.PutUint32(b[10:14], h.OffBits)
}

// UnmarshalBinary decodes the header from its 14 byte form. The signature is
// not checked.
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < fileHeaderLen {
		return &TruncatedError{Section: "file header", Err: errShort}
	}
	copy(h.Type[:], b[0:2])
	h.Size = binary.LittleEndian.Uint32(b[2:6])
	h.Reserved1 = binary.LittleEndian.Uint16(b[6:8])
	h.Reserved2 = binary.LittleEndian.Uint16(b[8:10])
	h.OffBits = binary.LittleEndian.Uint32(b[10:14])
	return nil
}

// MarshalBinary encodes the header into its 40 byte form.
func (h *InfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, infoHeaderLen)
	h.put(b)
	return b, nil
}

func (h *InfoHeader) put(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], h.Size)
	binary.LittleEndian.PutUint32(b[4:8], uint32(h.Width))
	binary.LittleEndian.PutUint32(b[8:12], uint32(h.Height))
	binary.LittleEndian.PutUint16(b[12:14], h.Planes)
	binary.LittleEndian.PutUint16(b[14:16], h.BitCount)
	binary.LittleEndian.PutUint32(b[16:20], h.Compression)
	binary.LittleEndian.PutUint32(b[20:24], h.SizeImage)
	binary.LittleEndian.PutUint32(b[24:28], uint32(h.XPelsPerMeter))
	binary.LittleEndian.PutUint32(b[28:32], uint32(h.YPelsPerMeter))
	binary.LittleEndian.PutUint32(b[32:36], h.ClrUsed)
	binary.LittleEndian.PutUint32(b[36:40], h.ClrImportant)
}

// UnmarshalBinary decodes the header from its 40 byte form. No field is
// validated.
func (h *InfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < infoHeaderLen {
		return &TruncatedError{Section: "info header", Err: errShort}
	}
	h.Size = binary.LittleEndian.Uint32(b[0:4])
	h.Width = int32(binary.LittleEndian.Uint32(b[4:8]))
	h.Height = int32(binary.LittleEndian.Uint32(b[8:12]))
	h.Planes = binary.LittleEndian.Uint16(b[12:14])
	h.BitCount = binary.LittleEndian.Uint16(b[14:16])
	h.Compression = binary.LittleEndian.Uint32(b[16:20])
	h.SizeImage = binary.LittleEndian.Uint32(b[20:24])
	h.XPelsPerMeter = int32(binary.LittleEndian.Uint32(b[24:28]))
	h.YPelsPerMeter = int32(binary.LittleEndian.Uint32(b[28:32]))
	h.ClrUsed = binary.LittleEndian.Uint32(b[32:36])
	h.ClrImportant = binary.LittleEndian.Uint32(b[36:40])
	return nil
}
