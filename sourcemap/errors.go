package sourcemap

import (
	"errors"
	"fmt"
)

var (
	// ErrPropertyExists is returned by AddProperty when the key is already
	// present on the source map.
	ErrPropertyExists = errors.New("property already exists on the source map")

	// ErrNotObject is returned when a decoded source map is not a JSON object.
	ErrNotObject = errors.New("source map is not a JSON object")

	// ErrNoComment is returned when a map file comment was expected but the
	// given text doesn't contain one.
	ErrNoComment = errors.New("no source map comment found")
)

// Decoding stages reported by DecodeError.
const (
	StageBase64 = "base64"
	StageJSON   = "json"
)

// DecodeError is returned when a payload can't be base64 decoded or parsed as
// JSON.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("couldn't decode the source map %s payload: %s", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FileError is returned when a referenced map file can't be read.
type FileError struct {
	// Path is the resolved, absolute path of the map file.
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("an error occurred while trying to read the map file at %s: %s", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
