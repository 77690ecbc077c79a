package fsext

import (
	"io/fs"

	"github.com/spf13/afero"
)

// Fs represents a file system
type Fs = afero.Fs

// NewMemMapFs returns a Fs that is in memory
func NewMemMapFs() Fs {
	return afero.NewMemMapFs()
}

// NewReadOnlyFs returns a Fs that reads through to fs and fails every write.
func NewReadOnlyFs(fs Fs) Fs {
	return afero.NewReadOnlyFs(fs)
}

// NewOsFs returns a new wrapps os.Fs
func NewOsFs() Fs {
	return afero.NewOsFs()
}

// WriteFile writes the provided data to the provided fs in the provided filename
func WriteFile(fs Fs, filename string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(fs, filename, data, perm)
}

// ReadFile reads the whole file from the filesystem
func ReadFile(fs Fs, filename string) ([]byte, error) {
	return afero.ReadFile(fs, filename)
}
