package walker

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/guard"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/manifest"
	"github.com/spf13/afero"
)

// Walker lists a directory tree into a manifest.
type Walker struct {
	fs       afero.Fs
	root     string
	base     string
	maxDepth int
	logger   Logger
	stats    Stats
}

// pendingDir is a directory admitted into the manifest whose children have
// not been listed yet.
type pendingDir struct {
	path     string
	depth    int
	children *[]manifest.Entry
}

// New creates a Walker with the given options.
// Root and Base are resolved to absolute paths.
func New(opts Options) (*Walker, error) {
	if opts.Root == "" {
		return nil, ErrEmptyRoot
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving scan root: %w", err)
	}

	base := filepath.Dir(root)
	if opts.Base != "" {
		base, err = filepath.Abs(opts.Base)
		if err != nil {
			return nil, fmt.Errorf("resolving base directory: %w", err)
		}
	}

	w := &Walker{
		fs:       opts.Fs,
		root:     root,
		base:     base,
		maxDepth: opts.MaxDepth,
		logger:   opts.Logger,
	}
	if w.fs == nil {
		w.fs = afero.NewOsFs()
	}
	if w.logger == nil {
		w.logger = nopLogger{}
	}
	return w, nil
}

// Root returns the resolved scan root.
func (w *Walker) Root() string {
	return w.root
}

// Stats returns the counters from the most recent Walk.
func (w *Walker) Stats() Stats {
	return w.stats
}

// Walk lists the scan root and every directory beneath it and returns the
// resulting manifest. It never fails: unreadable or rejected parts of the
// tree are logged and left out.
//
// Pending directories are kept on an explicit stack, so tree depth does not
// grow the call stack. Subdirectories are pushed in reverse so they are
// listed in pre-order.
func (w *Walker) Walk() manifest.Manifest {
	w.stats = Stats{}

	var top []manifest.Entry
	stack := []pendingDir{{path: w.root, children: &top}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if w.maxDepth > 0 && p.depth >= w.maxDepth {
			w.logger.Warn("depth limit reached, not listing directory", "dir", p.path, "max_depth", w.maxDepth)
			continue
		}

		entries := w.listDir(p.path)
		*p.children = entries

		for i := len(entries) - 1; i >= 0; i-- {
			if !entries[i].IsDir() {
				continue
			}
			stack = append(stack, pendingDir{
				path:     filepath.Join(p.path, entries[i].Name),
				depth:    p.depth + 1,
				children: &entries[i].Children,
			})
		}
	}

	if top == nil {
		top = []manifest.Entry{}
	}
	return manifest.Manifest(top)
}

// listDir returns the admitted entries of a single directory. Directory
// entries are returned with empty children for Walk to fill in.
func (w *Walker) listDir(dir string) []manifest.Entry {
	entries := make([]manifest.Entry, 0)

	if !guard.IsWithinBase(dir, w.root) {
		w.logger.Error("security: skipping path outside base directory", "dir", dir)
		return entries
	}

	names, err := w.readDirNames(dir)
	if err != nil {
		w.logger.Error("error reading directory", "dir", dir, "err", err)
		return entries
	}

	for _, name := range names {
		if !guard.IsSafeName(name) {
			w.logger.Warn("skipping unsafe filename", "name", name)
			w.stats.Skipped++
			continue
		}

		absPath := filepath.Join(dir, name)
		if !guard.IsWithinBase(absPath, w.root) {
			w.logger.Warn("skipping path traversal attempt", "name", name)
			w.stats.Skipped++
			continue
		}

		// Stat follows symlinks; a dangling link fails here.
		info, err := w.fs.Stat(absPath)
		if err != nil {
			w.logger.Error("error reading entry", "path", absPath, "err", err)
			w.stats.Skipped++
			continue
		}

		relPath := w.relative(absPath)
		switch {
		case info.IsDir():
			entries = append(entries, manifest.NewDirectory(name, relPath, nil))
			w.stats.Dirs++
		case info.Mode().IsRegular():
			entries = append(entries, manifest.NewFile(name, relPath))
			w.stats.Files++
		}
	}

	return entries
}

// readDirNames returns the names in dir sorted by byte order, so the
// manifest does not depend on the filesystem's listing order.
func (w *Walker) readDirNames(dir string) ([]string, error) {
	f, err := w.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// relative returns absPath relative to the base in forward-slash form.
func (w *Walker) relative(absPath string) string {
	rel, err := filepath.Rel(w.base, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}
