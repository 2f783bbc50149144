package output

import (
	"bytes"
	"encoding/json"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/manifest"
)

// jsonEntry fixes the field order to name, type, path, children.
// Children is a pointer so files omit it while empty directories keep [].
type jsonEntry struct {
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Path     string       `json:"path"`
	Children *[]jsonEntry `json:"children,omitempty"`
}

// JSONFormatter formats the manifest as a 2-space indented JSON array.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, m manifest.Manifest) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(toJSONEntries(m))
}

func toJSONEntries(entries []manifest.Entry) []jsonEntry {
	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		out[i] = jsonEntry{
			Name: e.Name,
			Type: string(e.Type),
			Path: e.Path,
		}
		if e.IsDir() {
			children := toJSONEntries(e.Children)
			out[i].Children = &children
		}
	}
	return out
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
