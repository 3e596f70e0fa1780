package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// FormatFileSize formats file size in human readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < 0 {
		return "-" + FormatFileSize(-size)
	}
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// ValidateOutputPath checks that outPath can be opened as a file: it must
// not be a directory, and its parent must be a directory if it exists.
func ValidateOutputPath(outPath string) error {
	if info, err := os.Stat(outPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("output path '%s' is a directory", outPath)
		}
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access output path: %w", err)
	}

	dir := filepath.Dir(outPath)
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("parent of output path '%s' is not a directory", dir)
	}
	return nil
}

// SamePath reports whether a and b refer to the same existing file
func SamePath(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
