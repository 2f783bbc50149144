package manifest

import "strings"

// Flatten returns the path of every file in the manifest in depth-first
// pre-order, following listing order within each directory.
func (m Manifest) Flatten() []string {
	paths := make([]string, 0)

	// Entries are pushed in reverse so they pop in listing order.
	stack := make([]*Entry, 0, len(m))
	for i := len(m) - 1; i >= 0; i-- {
		stack = append(stack, &m[i])
	}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch e.Type {
		case TypeFile:
			paths = append(paths, e.Path)
		case TypeDirectory:
			for i := len(e.Children) - 1; i >= 0; i-- {
				stack = append(stack, &e.Children[i])
			}
		}
	}

	return paths
}

// Counts returns the number of directory and file entries in the manifest.
func (m Manifest) Counts() (dirs, files int) {
	for i := range m {
		e := &m[i]
		if e.IsDir() {
			dirs++
			d, f := Manifest(e.Children).Counts()
			dirs += d
			files += f
			continue
		}
		files++
	}
	return dirs, files
}

// StripPrefix removes prefix from the start of every path that carries it.
// Paths without the prefix are returned unchanged. The input is not modified.
func StripPrefix(paths []string, prefix string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = strings.TrimPrefix(p, prefix)
	}
	return out
}
