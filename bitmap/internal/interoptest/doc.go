/*
Package interoptest checks the bitmap package against golang.org/x/image/bmp.

Both packages register an image format named "bmp", so x/image/bmp is kept
out of the bitmap package's own test binary.
*/
package interoptest
