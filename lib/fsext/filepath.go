// Package fsext provides extended file system functions
package fsext

import (
	"path/filepath"
)

// Resolve returns the absolute path of p, treating relative paths as relative
// to dir. An absolute p is returned cleaned and dir is ignored. A relative dir
// is itself resolved against the process working directory.
func Resolve(dir, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Abs(p)
}
