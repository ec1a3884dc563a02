package postfx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes to a temporary file next to filename, then renames it
// into place. On any failure the temporary file is removed and filename is untouched.
func WriteFileAtomic(filename string, write func(w io.Writer) error) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return IOError(fmt.Errorf("failed to create output directory: %w", err))
	}

	tmpFile, err := os.CreateTemp(dir, "postfx-*.tmp")
	if err != nil {
		return IOError(fmt.Errorf("failed to create temporary file: %w", err))
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := write(tmpFile); err != nil {
		return IOError(fmt.Errorf("failed to write output: %w", err))
	}

	if err := tmpFile.Close(); err != nil {
		return IOError(fmt.Errorf("failed to close temporary file before rename: %w", err))
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return IOError(fmt.Errorf("failed to rename temporary file: %w", err))
	}

	cleanupTemp = false
	return nil
}
