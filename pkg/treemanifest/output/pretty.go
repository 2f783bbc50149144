package output

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/manifest"
)

// Tree connectors.
const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// PrettyFormatter renders the manifest as an indented tree for terminal
// display, followed by a directory and file count.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, m manifest.Manifest) error {
	f.writeLevel(w, m, "")

	dirs, files := m.Counts()
	summary := fmt.Sprintf("%s %s, %s %s",
		humanize.Comma(int64(dirs)), plural(dirs, "directory", "directories"),
		humanize.Comma(int64(files)), plural(files, "file", "files"))
	w.WriteString("\n")
	w.WriteString(MutedStyle.Render(summary))
	w.WriteString("\n")
	return nil
}

func (f *PrettyFormatter) writeLevel(w *bytes.Buffer, entries []manifest.Entry, indent string) {
	for i := range entries {
		e := &entries[i]
		last := i == len(entries)-1

		branch, next := branchMid, indentMid
		if last {
			branch, next = branchLast, indentLast
		}

		w.WriteString(MutedStyle.Render(indent + branch))
		if e.IsDir() {
			w.WriteString(DirStyle.Render(e.Name + "/"))
		} else {
			w.WriteString(FileStyle.Render(e.Name))
		}
		w.WriteString("\n")

		if e.IsDir() {
			f.writeLevel(w, e.Children, indent+next)
		}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
