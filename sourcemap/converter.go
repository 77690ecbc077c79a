// Package sourcemap extracts, decodes, builds and re-encodes the
// `sourceMappingURL` comments that tools append to generated files.
//
// A comment either embeds the source map as a base64 encoded data URI
// ("inline") or references a map file by path. The map itself is handled as
// an opaque JSON object: only its top-level properties can be read or written.
package sourcemap

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"go.k6.io/srcmap/lib/fsext"
)

// Document is a decoded source map.
type Document = map[string]any

// Options describe how the input given to New is to be interpreted. The steps
// always run in the order file-load, strip-comment, base64-decode, JSON-parse,
// skipping those that aren't requested.
type Options struct {
	// IsFileComment loads the map file referenced by the input comment,
	// resolving its path against CommentFileDir.
	IsFileComment  bool
	CommentFileDir string

	// HasComment keeps only the payload after the last comma of the input.
	HasComment bool

	// IsEncoded base64 decodes the input. A decoded payload is always parsed
	// as JSON.
	IsEncoded bool

	// IsJSON parses the input as JSON.
	IsJSON bool

	// FS and Logger are used by the file-load step. They default to the OS
	// filesystem and a discarding logger.
	FS     fsext.Fs
	Logger logrus.FieldLogger
}

// CommentOptions control how comments are rendered.
type CommentOptions struct {
	// Multiline renders a `/*# ... */` block comment instead of `//# ...`.
	Multiline bool
}

// A Converter wraps a single source map document. It remembers the order of
// the top-level keys, so re-encoding a parsed source map keeps its layout.
// Keys of a Document handed in directly are sorted, as are the keys of nested
// objects.
type Converter struct {
	sourcemap Document
	keys      []string
}

func newConverter(doc Document, keys []string) *Converter {
	if doc == nil {
		doc = Document{}
	}
	if keys == nil {
		keys = sortedKeys(doc)
	}
	return &Converter{sourcemap: doc, keys: keys}
}

func sortedKeys(doc Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// New builds a Converter. input must be a Document, or a string when any of
// the pipeline steps in opts is requested.
func New(input any, opts Options) (*Converter, error) {
	if !opts.IsFileComment && !opts.HasComment && !opts.IsEncoded && !opts.IsJSON {
		switch v := input.(type) {
		case Document:
			return newConverter(v, nil), nil
		case nil:
			return newConverter(nil, nil), nil
		default:
			return nil, fmt.Errorf("%w: got %T", ErrNotObject, input)
		}
	}

	sm, ok := input.(string)
	if !ok {
		return nil, fmt.Errorf("source map input must be a string, got %T", input)
	}

	var err error
	if opts.IsFileComment {
		l := NewLoader(opts.FS, opts.Logger)
		if sm, err = readMapFile(l.fs, l.logger, sm, opts.CommentFileDir); err != nil {
			return nil, err
		}
	}
	if opts.HasComment {
		sm = stripComment(sm)
	}
	if opts.IsEncoded {
		if sm, err = decodeBase64(sm); err != nil {
			return nil, err
		}
	}

	doc, err := parseJSON(sm)
	if err != nil {
		return nil, err
	}
	return newConverter(doc, objectKeys(sm)), nil
}

// stripComment drops everything up to and including the last comma, which
// leaves the base64 payload of a data URI.
func stripComment(sm string) string {
	if i := strings.LastIndexByte(sm, ','); i >= 0 {
		return sm[i+1:]
	}
	return sm
}

// ToJSON serializes the source map. A positive indent pretty prints it with
// that many spaces per level (at most 10), otherwise it's compact.
func (c *Converter) ToJSON(indent int) (string, error) {
	return stringifyObject(c.sourcemap, c.orderedKeys(), indent)
}

// orderedKeys returns the known keys still in the source map, followed by the
// sorted keys that were added to the underlying Document behind our back.
func (c *Converter) orderedKeys() []string {
	keys := make([]string, 0, len(c.sourcemap))
	known := make(map[string]struct{}, len(c.keys))
	for _, k := range c.keys {
		known[k] = struct{}{}
		if _, ok := c.sourcemap[k]; ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == len(c.sourcemap) {
		return keys
	}
	var extra []string
	for k := range c.sourcemap {
		if _, ok := known[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// ToBase64 returns the compact JSON of the source map, base64 encoded.
func (c *Converter) ToBase64() (string, error) {
	json, err := c.ToJSON(0)
	if err != nil {
		return "", err
	}
	return encodeBase64(json), nil
}

// ToComment returns an inline source map comment embedding the source map.
func (c *Converter) ToComment(opts CommentOptions) (string, error) {
	b64, err := c.ToBase64()
	if err != nil {
		return "", err
	}
	return formatComment("data:application/json;charset=utf-8;base64,"+b64, opts), nil
}

// ToObject returns a deep copy of the source map, so changes to it don't
// affect the Converter.
func (c *Converter) ToObject() (Document, error) {
	json, err := c.ToJSON(0)
	if err != nil {
		return nil, err
	}
	return parseJSON(json)
}

// AddProperty sets key to value unless the source map already has key, in
// which case it returns an error wrapping ErrPropertyExists and leaves the
// source map untouched.
func (c *Converter) AddProperty(key string, value any) error {
	if _, ok := c.sourcemap[key]; ok {
		return fmt.Errorf("%w: %q, use SetProperty instead", ErrPropertyExists, key)
	}
	c.SetProperty(key, value)
	return nil
}

// SetProperty sets key to value, overwriting any previous value. A new key
// goes after the existing ones.
func (c *Converter) SetProperty(key string, value any) *Converter {
	if _, ok := c.sourcemap[key]; !ok && !slices.Contains(c.keys, key) {
		c.keys = append(c.keys, key)
	}
	c.sourcemap[key] = value
	return c
}

// GetProperty returns the value of key and whether it was present.
func (c *Converter) GetProperty(key string) (any, bool) {
	v, ok := c.sourcemap[key]
	return v, ok
}

func formatComment(payload string, opts CommentOptions) string {
	data := "sourceMappingURL=" + payload
	if opts.Multiline {
		return "/*# " + data + " */"
	}
	return "//# " + data
}
