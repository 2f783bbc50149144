// Package guard provides the traversal guards applied to every entry before
// it is admitted into a manifest: a string-level containment check against
// the scan root and a filename safety check for shell interpolation.
//
// Neither check resolves symlinks. A symlink inside the scan root that points
// outside of it passes IsWithinBase.
package guard

import (
	"path/filepath"
	"regexp"
	"strings"
)

// unsafeName matches shell metacharacters, control whitespace, a leading dot
// and a trailing "..".
var unsafeName = regexp.MustCompile("[`$;&|<>\\\\\"\\n\\r\\t]|^\\.|\\.\\.$")

// IsWithinBase reports whether target, once made absolute and cleaned, is
// base itself or lies beneath it.
func IsWithinBase(target, base string) bool {
	resolvedTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	resolvedBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}

	if resolvedTarget == resolvedBase {
		return true
	}

	// The filesystem root already ends in a separator.
	prefix := resolvedBase
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(resolvedTarget, prefix)
}

// IsSafeName reports whether name may be included in a manifest.
func IsSafeName(name string) bool {
	return !unsafeName.MatchString(name)
}
