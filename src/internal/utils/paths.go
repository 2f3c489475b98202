package utils

import "path/filepath"

// GetAbsolutePath resolves path against baseDir. Absolute paths pass through untouched;
// everything else is joined and cleaned, so "" yields baseDir itself.
func GetAbsolutePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
