package sourcemap

import (
	"regexp"
	"strings"
)

// The grammars below are kept byte for byte compatible with the ones used by
// JavaScript tooling, so that comments produced anywhere in that ecosystem are
// recognized. They are always compiled in multi-line mode, with \s, . and $
// following the JavaScript line terminator rules (see compile).
const (
	// CommentPattern matches an inline comment carrying a base64 encoded JSON
	// source map. Group 1 is the whole data URI.
	CommentPattern = `^\s*\/(?:\/|\*)[@#]\s+sourceMappingURL=(data:(?:application|text)\/json;(?:charset[:=]\S+?;)?base64,(?:.*))$`

	// MapFileCommentPattern matches a comment referencing an external map
	// file. Group 1 holds the path of the `//` form, group 2 the path of the
	// `/* */` form.
	MapFileCommentPattern = `(?:\/\/[@#][ \t]+sourceMappingURL=([^\s'"]+?)[ \t]*$)|(?:\/\*[@#][ \t]+sourceMappingURL=([^\*]+?)[ \t]*(?:\*\/){1}[ \t]*$)`
)

// regexp.Regexp values are safe for concurrent use and keep no scan position
// between calls, so a single compiled expression per grammar is shared.
var (
	commentRegexp        = compile(CommentPattern)
	mapFileCommentRegexp = compile(MapFileCommentPattern)
)

// jsSpace is the body of a character class matching what \s matches in
// JavaScript.
const jsSpace = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// lineTerminators end a line for JavaScript but not for RE2, whose multi-line
// $ only matches before \n.
var lineTerminators = []string{"\r", "\u2028", "\u2029"}

// jsLineSemantics rewrites the constructs of the grammars whose meaning
// differs between JavaScript and RE2. Order matters: negated classes go
// before the bare escapes.
var jsLineSemantics = strings.NewReplacer(
	`[^\s`, `[^`+jsSpace,
	`\s`, `[`+jsSpace+`]`,
	`\S`, `[^`+jsSpace+`]`,
	`(?:.*)`, `[^\n\r\x{2028}\x{2029}]*`,
	`$`, `(?:$|\r|\x{2028}|\x{2029})`,
)

// compile builds a multi-line expression out of one of the grammars. A
// comment followed by \r\n ends before the \r; the terminator that $ may
// consume is trimmed from the match again in newMatch.
func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)` + jsLineSemantics.Replace(pattern))
}

// Kind tells which grammar produced a Match.
type Kind uint8

// Kinds of source map comments.
const (
	KindInline Kind = iota + 1
	KindMapFile
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindMapFile:
		return "file"
	default:
		return "unknown"
	}
}

// Match is a single occurrence of a source map comment in some text.
type Match struct {
	Kind Kind
	// Text is the full matched text, including any leading whitespace the
	// grammar consumed.
	Text string
	// Payload is the captured data URI or map file path.
	Payload string
	// Start and End are byte offsets of Text in the scanned source.
	Start, End int
	// Line is the 1-based line on which the comment marker appears.
	Line int
}

// Matcher finds source map comments of one grammar.
type Matcher struct {
	kind Kind
	re   *regexp.Regexp
}

// Inline returns the matcher for inline (data URI) comments.
func Inline() Matcher {
	return Matcher{kind: KindInline, re: commentRegexp}
}

// MapFile returns the matcher for comments referencing a map file.
func MapFile() Matcher {
	return Matcher{kind: KindMapFile, re: mapFileCommentRegexp}
}

// Kind returns the grammar the matcher implements.
func (m Matcher) Kind() Kind {
	return m.kind
}

// Regexp returns a freshly compiled copy of the matcher's expression, which
// callers are free to modify. Its source is the grammar constant rewritten
// for RE2, so it differs textually from CommentPattern and
// MapFileCommentPattern. A match of the copy may end with the \r of a \r\n
// line ending.
func (m Matcher) Regexp() *regexp.Regexp {
	return regexp.MustCompile(m.re.String())
}

// FindAll returns every non-overlapping match in src, in order.
func (m Matcher) FindAll(src string) []Match {
	indexes := m.re.FindAllStringSubmatchIndex(src, -1)
	if len(indexes) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(indexes))
	for _, loc := range indexes {
		matches = append(matches, m.newMatch(src, loc))
	}
	return matches
}

// First returns the first match in src.
func (m Matcher) First(src string) (Match, bool) {
	loc := m.re.FindStringSubmatchIndex(src)
	if loc == nil {
		return Match{}, false
	}
	return m.newMatch(src, loc), true
}

// Last returns the last match in src. Later comments override earlier ones.
func (m Matcher) Last(src string) (Match, bool) {
	matches := m.FindAll(src)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[len(matches)-1], true
}

// Remove deletes every match from src. Line terminators following a
// comment are kept.
func (m Matcher) Remove(src string) string {
	matches := m.FindAll(src)
	if len(matches) == 0 {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, match := range matches {
		b.WriteString(src[last:match.Start])
		last = match.End
	}
	b.WriteString(src[last:])
	return b.String()
}

func (m Matcher) newMatch(src string, loc []int) Match {
	end := loc[1]
	for _, t := range lineTerminators {
		if strings.HasSuffix(src[loc[0]:end], t) {
			end -= len(t)
			break
		}
	}
	match := Match{
		Kind:  m.kind,
		Text:  src[loc[0]:end],
		Start: loc[0],
		End:   end,
	}
	// the first capture group that participated holds the payload
	for g := 1; 2*g+1 < len(loc); g++ {
		if loc[2*g] >= 0 && loc[2*g+1] > loc[2*g] {
			match.Payload = src[loc[2*g]:loc[2*g+1]]
			break
		}
	}

	marker := loc[0] + strings.Index(match.Text, "/")
	match.Line = strings.Count(src[:marker], "\n") + 1
	return match
}
