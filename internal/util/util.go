// internal/util/util.go
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// WriteFile replaces path with data. The content is written to a temporary
// sibling first and renamed into place, so readers never observe a partially
// written report. A symlinked path is written through to its target, and an
// existing file keeps its permission bits.
func WriteFile(path string, data []byte) (err error) {
	target, mode := replaceTarget(path)

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("unable to create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("unable to chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("unable to replace %s: %w", path, err)
	}
	return nil
}

// replaceTarget resolves the file that WriteFile should replace and the mode
// it should end up with. New files get 0644.
func replaceTarget(path string) (string, os.FileMode) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	if info, err := os.Stat(target); err == nil && info.Mode().IsRegular() {
		return target, info.Mode().Perm()
	}
	return target, 0o644
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// Preview flattens text onto one line and truncates it for log output.
func Preview(text string, maxRunes int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if flat == "" {
		return `""`
	}
	return TruncateRunes(flat, maxRunes)
}
