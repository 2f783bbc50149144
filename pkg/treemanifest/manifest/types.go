// Package manifest provides the nested description of a scanned directory
// tree and the flattening of that tree into an ordered list of file paths.
package manifest

// EntryType represents the kind of filesystem object an entry describes.
type EntryType string

const (
	// TypeFile represents a regular file.
	TypeFile EntryType = "file"
	// TypeDirectory represents a directory.
	TypeDirectory EntryType = "directory"
)

// Entry represents a single file or directory in the manifest.
type Entry struct {
	// Name is the base name, without separators.
	Name string

	// Type is either TypeFile or TypeDirectory.
	Type EntryType

	// Path is relative to the reference base, using forward slashes.
	Path string

	// Children is non-nil for every directory, even an empty or unreadable one,
	// and nil for files. Order matches the directory listing.
	Children []Entry
}

// IsDir returns true if the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Type == TypeDirectory
}

// Manifest is the ordered sequence of top-level entries under the scan root.
type Manifest []Entry

// NewFile creates a file entry.
func NewFile(name, path string) Entry {
	return Entry{Name: name, Type: TypeFile, Path: path}
}

// NewDirectory creates a directory entry with the given children.
// A nil children slice is replaced with an empty one.
func NewDirectory(name, path string, children []Entry) Entry {
	if children == nil {
		children = []Entry{}
	}
	return Entry{Name: name, Type: TypeDirectory, Path: path, Children: children}
}
