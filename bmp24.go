/*
Package bmp24 is a library for converting images to uncompressed 24-bit
bitmaps and keeping a store of the results.
*/
package bmp24

import (
	"log"
)

const defaultWorkers = 10

// Converter converts images to bitmaps, optionally recording them in a DB.
type Converter struct {
	db     *DB
	logger *log.Logger

	// Colors, if non-zero, is the maximum number of distinct colors in
	// each converted bitmap.
	Colors int

	// Workers is the number of files Scan converts concurrently.
	Workers int
}

// New returns a Converter. db may be nil if nothing is to be stored.
func New(db *DB, logger *log.Logger) *Converter {
	return &Converter{
		db:      db,
		logger:  logger,
		Workers: defaultWorkers,
	}
}
