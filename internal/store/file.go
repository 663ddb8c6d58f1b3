// Package store reads and writes the diary file and owns the in-memory
// record list while a diary is open.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrIO wraps every file open, read or write failure reported by this
// package.
var ErrIO = errors.New("i/o error")

// ReadAll returns the whole content of path. A missing file is reported as
// an error that matches both ErrIO and os.ErrNotExist.
func ReadAll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	return data, nil
}

// WriteAll atomically replaces path with data: write a temp file in the same
// directory, fsync it, then rename it over path.
func WriteAll(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".diary-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", ErrIO, err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrIO, step, err)
	}

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		return fail("writing data", err)
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %w", ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming temp file: %w", ErrIO, err)
	}
	return nil
}
