package output

import (
	"bytes"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/manifest"
	"gopkg.in/yaml.v3"
)

// yamlEntry mirrors jsonEntry for YAML output.
type yamlEntry struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`
	Path     string       `yaml:"path"`
	Children *[]yamlEntry `yaml:"children,omitempty"`
}

// YAMLFormatter formats the manifest as a YAML sequence.
// It produces the same structure as JSONFormatter.
type YAMLFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, m manifest.Manifest) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(toYAMLEntries(m)); err != nil {
		return err
	}
	return encoder.Close()
}

func toYAMLEntries(entries []manifest.Entry) []yamlEntry {
	out := make([]yamlEntry, len(entries))
	for i, e := range entries {
		out[i] = yamlEntry{
			Name: e.Name,
			Type: string(e.Type),
			Path: e.Path,
		}
		if e.IsDir() {
			children := toYAMLEntries(e.Children)
			out[i].Children = &children
		}
	}
	return out
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

// Ensure YAMLFormatter implements Formatter.
var _ Formatter = (*YAMLFormatter)(nil)
