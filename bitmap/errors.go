package bitmap

import (
	"errors"
	"io"
)

// A FormatError reports that the input is not a valid bitmap.
type FormatError string

func (e FormatError) Error() string { return "bitmap: invalid format: " + string(e) }

// An UnsupportedError reports that the input uses a valid but unsupported
// feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "bitmap: unsupported feature: " + string(e) }

// A TruncatedError reports that the input ended before the named section was
// complete.
type TruncatedError struct {
	Section string
	Err     error
}

func (e *TruncatedError) Error() string {
	return "bitmap: truncated " + e.Section + ": " + e.Err.Error()
}

func (e *TruncatedError) Unwrap() error { return e.Err }

var errShort = io.ErrUnexpectedEOF

// truncated wraps io.EOF and io.ErrUnexpectedEOF as a TruncatedError and
// returns any other error unchanged.
func truncated(section string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &TruncatedError{Section: section, Err: io.ErrUnexpectedEOF}
	}
	return err
}
