/*
Package bitmap implements a decoder and encoder for uncompressed 24-bit
Windows bitmap images.

A file is a 14 byte file header, a 40 byte info header and the pixel data.
Every field is little-endian. Pixels are stored as blue, green and red bytes,
rows are stored bottom-up and each row is padded with zeroes to a multiple of
four bytes. There is no compression and no palette, so the resulting file is
always 54 bytes plus RowStride(width) * height bytes in size.
*/
package bitmap

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	headerLen     = fileHeaderLen + infoHeaderLen

	bitsPerPixel  = 24
	bytesPerPixel = bitsPerPixel >> 3
	rowAlign      = 4

	compressionNone = 0
)

var signature = [2]byte{'B', 'M'}

// RowStride returns the number of bytes used by one row of an image that is
// width pixels wide, including the padding that aligns rows to four bytes.
func RowStride(width int) int {
	n := width * bytesPerPixel
	return n + (rowAlign-n%rowAlign)%rowAlign
}

// ImageSize returns the size in bytes of the pixel data of an image with the
// given dimensions, including row padding.
func ImageSize(width, height int) int {
	return RowStride(width) * height
}
