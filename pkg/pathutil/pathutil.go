// Package pathutil converts between the absolute paths used internally and
// the relative paths shown to users.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Abs returns the absolute form of path, or path itself when it cannot be
// made absolute
func Abs(path string) string {
	if path == "" {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Join resolves path against root unless it is empty or already absolute
func Join(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ToRelative shortens path to be relative to root. Paths outside root, or
// that are already relative, are returned unchanged.
func ToRelative(path, root string) string {
	if path == "" || root == "" || !filepath.IsAbs(path) {
		return path
	}

	path = filepath.Clean(path)
	rel, err := filepath.Rel(filepath.Clean(root), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Display formats path for output relative to the working directory
func Display(path string) string {
	wd, err := filepath.Abs(".")
	if err != nil {
		return path
	}
	return ToRelative(path, wd)
}
