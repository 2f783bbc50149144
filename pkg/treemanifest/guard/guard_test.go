package guard

import (
	"path/filepath"
	"testing"
)

func TestIsWithinBase(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "files")

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{name: "base itself", target: base, want: true},
		{name: "direct child", target: filepath.Join(base, "child"), want: true},
		{name: "nested child", target: filepath.Join(base, "a", "b", "c.txt"), want: true},
		{name: "trailing separator", target: base + string(filepath.Separator), want: true},
		{name: "unrelated absolute", target: "/etc", want: false},
		{name: "parent", target: filepath.Dir(base), want: false},
		{name: "sibling sharing prefix", target: base + "-other", want: false},
		{name: "traversal out", target: filepath.Join(base, "..", "escape"), want: false},
		{name: "traversal back in", target: base + "/sub/../inner", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWithinBase(tt.target, base); got != tt.want {
				t.Errorf("IsWithinBase(%q, %q) = %v, want %v", tt.target, base, got, tt.want)
			}
		})
	}
}

func TestIsWithinBase_FilesystemRoot(t *testing.T) {
	t.Parallel()

	if !IsWithinBase("/etc", "/") {
		t.Error("IsWithinBase(/etc, /) = false, want true")
	}
	if !IsWithinBase("/", "/") {
		t.Error("IsWithinBase(/, /) = false, want true")
	}
}

func TestIsSafeName(t *testing.T) {
	t.Parallel()

	unsafe := []string{
		"a`b", "a$b", "a;b", "a&b", "a|b", "a<b", "a>b", `a\b`, `a"b`,
		"a\nb", "a\rb", "a\tb",
		".hidden", ".", "..", "name..",
		"bad;name.txt",
	}
	for _, name := range unsafe {
		if IsSafeName(name) {
			t.Errorf("IsSafeName(%q) = true, want false", name)
		}
	}

	safe := []string{
		"a.txt", "README", "file123", "some-file_name.tar.gz",
		"with space.txt", "trailing.", "mid..dle", "UPPER",
	}
	for _, name := range safe {
		if !IsSafeName(name) {
			t.Errorf("IsSafeName(%q) = false, want true", name)
		}
	}
}
