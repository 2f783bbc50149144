// Package walker builds a manifest by listing a directory tree in a single
// synchronous pass. Every entry is checked by the traversal guards before it
// is admitted, and every filesystem failure is logged and skipped so one
// unreadable directory never aborts the rest of the scan.
package walker

import (
	"errors"

	"github.com/spf13/afero"
)

// Logger receives the walker's diagnostics.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// ErrEmptyRoot is returned by New when Options.Root is empty.
var ErrEmptyRoot = errors.New("scan root cannot be empty")

// Options configures the walker.
type Options struct {
	// Root is the scan root. Every admitted path must lie within it.
	Root string

	// Base is the reference directory that entry paths are made relative to.
	// Empty means the parent of Root.
	Base string

	// MaxDepth bounds how many directory levels below Root are listed.
	// Directories beyond it are kept with empty children. Zero is unlimited.
	MaxDepth int

	// Fs is the filesystem to read. Nil uses the OS filesystem.
	Fs afero.Fs

	// Logger receives security warnings and filesystem errors. Nil discards them.
	Logger Logger
}

// Stats counts what a walk admitted and skipped.
type Stats struct {
	Dirs    int
	Files   int
	Skipped int
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
