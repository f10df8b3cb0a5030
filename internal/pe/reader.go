// Package pe decodes the header region of PE files and lays every header
// field out at its absolute file offset.
package pe

import (
	"os"
)

// Reader holds the whole content of a file read once at load time. The
// buffer is never modified after Load returns.
type Reader struct {
	data     []byte
	filepath string
}

// Load reads the file at filepath into memory.
func Load(filepath string) (*Reader, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, &IOError{Path: filepath, Err: err}
	}
	return NewReader(filepath, data), nil
}

// NewReader wraps an already loaded buffer.
func NewReader(filepath string, data []byte) *Reader {
	return &Reader{data: data, filepath: filepath}
}

// Bytes returns the raw file content. Callers must not modify it.
func (r *Reader) Bytes() []byte {
	return r.data
}

// FilePath returns the file path.
func (r *Reader) FilePath() string {
	return r.filepath
}

// FileSize returns the file size in bytes.
func (r *Reader) FileSize() int64 {
	return int64(len(r.data))
}
