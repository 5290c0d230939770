package bmp24

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bodgit/bmp24/bitmap"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no stored bitmap matches.
var ErrNotFound = errors.New("bitmap not found")

// DB stores encoded bitmaps keyed by the SHA-1 of the image they were
// converted from.
type DB struct {
	db *sql.DB

	// Serializes Put so the lookup and insert are atomic
	mu sync.Mutex
}

// Entry describes a stored bitmap.
type Entry struct {
	ID     int64
	SHA1   string
	Name   string
	Width  int
	Height int
	Size   int
}

// NewDB opens, creating if necessary, the database in file.
func NewDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS bitmap (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// Put stores b under sha, returning the row id. If sha is already present the
// existing row is kept and its id returned.
func (db *DB) Put(sha, name string, b *bitmap.Bitmap) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM bitmap WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		data, err := b.MarshalBinary()
		if err != nil {
			return 0, err
		}
		result, err := db.db.Exec("INSERT INTO bitmap (sha1, name, width, height, data) VALUES (?, ?, ?, ?, ?)", sha, name, b.Width(), b.Height(), data)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func (db *DB) data(sha string) ([]byte, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM bitmap WHERE sha1 = ?", sha).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Get returns the bitmap stored under sha.
func (db *DB) Get(sha string) (*bitmap.Bitmap, error) {
	data, err := db.data(sha)
	if err != nil {
		return nil, err
	}
	b := new(bitmap.Bitmap)
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Export writes the encoded bitmap stored under sha to w.
func (db *DB) Export(sha string, w io.Writer) error {
	data, err := db.data(sha)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// List returns every stored bitmap ordered by name.
func (db *DB) List() ([]Entry, error) {
	rows, err := db.db.Query("SELECT id, sha1, name, width, height, length(data) FROM bitmap ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SHA1, &e.Name, &e.Width, &e.Height, &e.Size); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
