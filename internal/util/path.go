package util

import "strings"

// SplitExt splits a file name into stem and extension. The extension starts
// at the last dot, except that a leading dot or a trailing dot never starts
// one: ".gitignore" and "archive." both have an empty extension.
func SplitExt(name string) (stem, ext string) {
	if i := strings.LastIndex(name, "."); i > 0 && i < len(name)-1 {
		return name[:i], name[i:]
	}
	return name, ""
}
