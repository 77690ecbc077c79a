package sourcemap

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// decodeBase64 decodes a standard base64 payload into text. Decoding is
// lenient in two ways: ASCII whitespace anywhere in the input is ignored and
// the trailing padding may be omitted.
func decodeBase64(s string) (string, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)

	enc := base64.StdEncoding
	if len(s)%4 != 0 && !strings.HasSuffix(s, "=") {
		enc = base64.RawStdEncoding
	}
	b, err := enc.DecodeString(s)
	if err != nil {
		return "", &DecodeError{Stage: StageBase64, Err: err}
	}
	return string(b), nil
}

func encodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// parseJSON parses a source map document. Anything other than a JSON object at
// the top level is rejected.
func parseJSON(s string) (Document, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, &DecodeError{Stage: StageJSON, Err: err}
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{Stage: StageJSON, Err: ErrNotObject}
	}
	return doc, nil
}

// objectKeys returns the keys of the JSON object s in the order they first
// appear. s must already be known to be a valid object.
func objectKeys(s string) []string {
	var keys []string
	seen := make(map[string]struct{})
	gjson.Parse(s).ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// maxIndent mirrors the cap JSON.stringify puts on its space argument.
const maxIndent = 10

// Stringify renders v the way JSON.stringify does: no HTML escaping and, if
// indent is positive, that many spaces per nesting level, capped at 10. Maps
// are written with sorted keys.
func Stringify(v any, indent int) (string, error) {
	return stringifyJSON(v, "", indent)
}

// stringifyJSON is Stringify for a value that starts at a nesting level
// whose lines are already prefixed with prefix.
func stringifyJSON(v any, prefix string, indent int) (string, error) {
	indent = min(indent, maxIndent)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent(prefix, strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// stringifyObject renders doc with its top-level keys in the given order.
func stringifyObject(doc Document, keys []string, indent int) (string, error) {
	if len(doc) == 0 {
		return "{}", nil
	}
	indent = min(indent, maxIndent)
	pad := ""
	if indent > 0 {
		pad = strings.Repeat(" ", indent)
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := stringifyJSON(key, "", 0)
		if err != nil {
			return "", err
		}
		v, err := stringifyJSON(doc[key], pad, indent)
		if err != nil {
			return "", fmt.Errorf("couldn't encode the %q property: %w", key, err)
		}
		if indent > 0 {
			b.WriteString("\n" + pad + k + ": " + v)
		} else {
			b.WriteString(k + ":" + v)
		}
	}
	if indent > 0 {
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String(), nil
}
