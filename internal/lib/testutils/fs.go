// Package testutils contains helpers shared by the tests of multiple packages.
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.k6.io/srcmap/lib/fsext"
)

// MakeMemMapFs creates a new in-memory filesystem with the given files.
//
// The keys of the withFiles map are the paths of the files to create, and the
// values are their contents. Sources and their map files can then be laid out
// without touching the disk. The files are created with 644 mode.
func MakeMemMapFs(t testing.TB, withFiles map[string]string) fsext.Fs {
	fs := fsext.NewMemMapFs()

	for path, data := range withFiles {
		require.NoError(t, fsext.WriteFile(fs, path, []byte(data), 0o644))
	}

	return fs
}

// ReadFile returns the contents of path in fs, failing the test if it can't be
// read.
func ReadFile(t testing.TB, fs fsext.Fs, path string) string {
	data, err := fsext.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}
