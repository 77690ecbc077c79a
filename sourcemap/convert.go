package sourcemap

import "strings"

// FromObject wraps an already decoded source map. The Converter shares obj
// with the caller.
func FromObject(obj Document) *Converter {
	return newConverter(obj, nil)
}

// FromJSON parses a JSON encoded source map. The top level must be a JSON
// object: arrays, strings, numbers, booleans and null are rejected with a
// DecodeError wrapping ErrNotObject, even though they are valid JSON.
func FromJSON(json string) (*Converter, error) {
	return New(json, Options{IsJSON: true})
}

// FromBase64 decodes a base64 encoded JSON source map.
func FromBase64(b64 string) (*Converter, error) {
	return New(b64, Options{IsEncoded: true})
}

// FromComment decodes an inline source map comment, in either the `//#` or
// the `/*# ... */` form.
func FromComment(comment string) (*Converter, error) {
	comment = strings.TrimSpace(comment)
	if strings.HasPrefix(comment, "/*") {
		comment = "//" + comment[2:]
	}
	comment = strings.TrimSuffix(comment, "*/")

	return New(comment, Options{HasComment: true, IsEncoded: true})
}

// FromMapFileComment reads the map file referenced by comment from the OS
// filesystem, resolving its path against dir.
func FromMapFileComment(comment, dir string) (*Converter, error) {
	return defaultLoader.FromMapFileComment(comment, dir)
}

// FromSource decodes the last inline source map comment found in content. It
// returns nil and no error if there is none.
func FromSource(content string) (*Converter, error) {
	m, ok := Inline().Last(content)
	if !ok {
		return nil, nil //nolint:nilnil
	}
	return FromComment(m.Text)
}

// FromMapFileSource loads the map file referenced by the last map file
// comment found in content, from the OS filesystem. It returns nil and no
// error if there is no such comment.
func FromMapFileSource(content, dir string) (*Converter, error) {
	return defaultLoader.FromMapFileSource(content, dir)
}

// RemoveComments removes every inline source map comment from src.
func RemoveComments(src string) string {
	return Inline().Remove(src)
}

// RemoveMapFileComments removes every map file comment from src.
func RemoveMapFileComments(src string) string {
	return MapFile().Remove(src)
}

// GenerateMapFileComment returns a comment referencing the map file at file.
func GenerateMapFileComment(file string, opts CommentOptions) string {
	return formatComment(file, opts)
}

// GetCommentValue returns the data URI of the first inline source map
// comment in src.
func GetCommentValue(src string) (string, bool) {
	m, ok := Inline().First(src)
	if !ok || m.Payload == "" {
		return "", false
	}
	return m.Payload, true
}

// GetMapFileCommentValue returns the path of the first map file comment in
// src.
func GetMapFileCommentValue(src string) (string, bool) {
	m, ok := MapFile().First(src)
	if !ok || m.Payload == "" {
		return "", false
	}
	return m.Payload, true
}
