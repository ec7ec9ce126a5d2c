// Package fileutil writes simulation exports without ever exposing a
// partially written file.
package fileutil

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic streams the output of write into a temporary file next to
// filename and renames it into place once write returns nil. Readers see
// either the previous file or the complete new one.
func WriteAtomic(filename string, perm os.FileMode, write func(io.Writer) error) error {
	// Same directory, so the rename stays on one filesystem.
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmpFile)
	if err := write(buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", base, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to filename atomically.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteJSONAtomic encodes v as indented JSON and writes it atomically.
func WriteJSONAtomic(filename string, v any, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}
