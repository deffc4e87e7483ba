package report

import (
	"path/filepath"
	"strings"
)

// Path derives the report location for input by replacing every occurrence
// of source with target and swapping the final extension for ext.
func Path(input, source, target, ext string) string {
	path := input
	if source != "" {
		path = strings.ReplaceAll(path, source, target)
	}
	return trimExt(path) + ext
}

// trimExt drops the final extension of the last path element. A leading dot
// alone (".bundle") does not count as an extension.
func trimExt(path string) string {
	base := filepath.Base(path)
	if !strings.HasSuffix(path, base) {
		return path
	}
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return path
	}
	cut := len(base) - len(trimmed) + idx
	return path[:len(path)-len(base)+cut]
}
