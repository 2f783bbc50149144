package output

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Logger receives the writer's confirmations and failures.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Writer writes serialized results to files, replacing any existing file.
type Writer struct {
	fs     afero.Fs
	logger Logger
}

// NewWriter creates a Writer. A nil fs uses the OS filesystem.
func NewWriter(fs afero.Fs, logger Logger) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, logger: logger}
}

// Write writes content to path and logs a confirmation naming the file.
// On failure it logs the error and returns it; the caller is expected to
// treat it as fatal.
func (w *Writer) Write(path string, content []byte, description string) error {
	if err := w.writeAtomic(path, content); err != nil {
		w.logger.Error(fmt.Sprintf("failed to write %s", description), "path", path, "err", err)
		return fmt.Errorf("writing %s: %w", description, err)
	}

	w.logger.Info(fmt.Sprintf("%s generated", description), "file", filepath.Base(path))
	return nil
}

// writeAtomic writes through a temp file and renames it over path. The
// rename replaces the directory entry, so an existing read-only file is
// replaced and an existing symlink is replaced rather than written through.
func (w *Writer) writeAtomic(path string, content []byte) error {
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(w.fs, tmpPath, content, 0o644); err != nil {
		_ = w.fs.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := w.fs.Rename(tmpPath, path); err != nil {
		// Cleanup temp file on rename failure
		_ = w.fs.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
