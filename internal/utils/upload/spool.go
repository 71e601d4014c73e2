// Package upload keeps uploaded files readable after the request that carried them has ended.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const spoolPattern = "transaction-import-*.csv"

// SpooledFile is a temporary copy of an upload. Closing it also deletes it.
type SpooledFile struct {
	*os.File
}

// Spool copies src into a new temporary file in dir (os.TempDir when empty)
// and returns it positioned at the start.
func Spool(src io.Reader, dir string) (*SpooledFile, error) {
	f, err := os.CreateTemp(dir, spoolPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	spooled := &SpooledFile{File: f}
	if _, err := io.Copy(f, src); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to spool upload: %w", err), spooled.Close())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to rewind spool file: %w", err), spooled.Close())
	}

	return spooled, nil
}

// Close closes and removes the temporary file.
func (s *SpooledFile) Close() error {
	closeErr := s.File.Close()
	if err := os.Remove(s.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(closeErr, err)
	}
	return closeErr
}
