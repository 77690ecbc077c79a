package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineMatcher(t *testing.T) {
	t.Parallel()

	const payload = "data:application/json;charset=utf-8;base64,eyJhIjoxfQ=="

	testCases := []struct {
		name    string
		src     string
		payload string // empty means no match
	}{
		{name: "hash", src: "//# sourceMappingURL=" + payload, payload: payload},
		{name: "at", src: "//@ sourceMappingURL=" + payload, payload: payload},
		{name: "block", src: "/*# sourceMappingURL=" + payload + " */", payload: payload + " */"},
		{name: "indented", src: "code();\n   //# sourceMappingURL=" + payload, payload: payload},
		{name: "text json", src: "//# sourceMappingURL=data:text/json;base64,eyJhIjoxfQ==", payload: "data:text/json;base64,eyJhIjoxfQ=="},
		{name: "charset colon", src: "//# sourceMappingURL=data:application/json;charset:utf-8;base64,AA", payload: "data:application/json;charset:utf-8;base64,AA"},
		{name: "no charset", src: "//# sourceMappingURL=data:application/json;base64,AA", payload: "data:application/json;base64,AA"},
		{name: "wrong mime", src: "//# sourceMappingURL=data:text/plain;base64,AA"},
		{name: "not base64", src: "//# sourceMappingURL=data:application/json,{}"},
		{name: "file reference", src: "//# sourceMappingURL=foo.js.map"},
		{name: "code before comment", src: "var a = 1; //# sourceMappingURL=" + payload},
		{name: "missing space", src: "//#sourceMappingURL=" + payload},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, ok := Inline().First(tc.src)
			if tc.payload == "" {
				assert.False(t, ok, "unexpected match %q", m.Text)
				return
			}
			require.True(t, ok)
			assert.Equal(t, KindInline, m.Kind)
			assert.Equal(t, tc.payload, m.Payload)
		})
	}
}

func TestMapFileMatcher(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		payload string // empty means no match
	}{
		{name: "hash", src: "//# sourceMappingURL=foo.js.map", payload: "foo.js.map"},
		{name: "at", src: "//@ sourceMappingURL=foo.js.map", payload: "foo.js.map"},
		{name: "trailing spaces", src: "//# sourceMappingURL=foo.js.map \t ", payload: "foo.js.map"},
		{name: "after code", src: "var a = 1; //# sourceMappingURL=foo.js.map", payload: "foo.js.map"},
		{name: "block", src: "/*# sourceMappingURL=foo.js.map */", payload: "foo.js.map"},
		{name: "block no space", src: "/*# sourceMappingURL=foo.js.map*/", payload: "foo.js.map"},
		{name: "block with spaces in path", src: "/*# sourceMappingURL=my maps/foo.js.map   */  ", payload: "my maps/foo.js.map"},
		{name: "quoted", src: `//# sourceMappingURL="foo.js.map"`},
		{name: "text after path", src: "//# sourceMappingURL=foo.js.map trailing"},
		{name: "unterminated block", src: "/*# sourceMappingURL=foo.js.map"},
		{name: "nothing", src: "console.log('hi')"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, ok := MapFile().First(tc.src)
			if tc.payload == "" {
				assert.False(t, ok, "unexpected match %q", m.Text)
				return
			}
			require.True(t, ok)
			assert.Equal(t, KindMapFile, m.Kind)
			assert.Equal(t, tc.payload, m.Payload)
		})
	}
}

func TestMatcherFindAllAndLast(t *testing.T) {
	t.Parallel()

	src := "a();\n" +
		"//# sourceMappingURL=first.js.map\n" +
		"b();\n" +
		"/*# sourceMappingURL=second.js.map */\n" +
		"//# sourceMappingURL=third.js.map\n"

	matches := MapFile().FindAll(src)
	require.Len(t, matches, 3)

	payloads := make([]string, 0, len(matches))
	lines := make([]int, 0, len(matches))
	for _, m := range matches {
		payloads = append(payloads, m.Payload)
		lines = append(lines, m.Line)
		assert.Equal(t, m.Text, src[m.Start:m.End])
	}
	assert.Equal(t, []string{"first.js.map", "second.js.map", "third.js.map"}, payloads)
	assert.Equal(t, []int{2, 4, 5}, lines)

	last, ok := MapFile().Last(src)
	require.True(t, ok)
	assert.Equal(t, "third.js.map", last.Payload)

	first, ok := MapFile().First(src)
	require.True(t, ok)
	assert.Equal(t, "first.js.map", first.Payload)

	_, ok = MapFile().Last("no comments here")
	assert.False(t, ok)
	assert.Empty(t, Inline().FindAll("no comments here"))
}

func TestMatcherLineSkipsLeadingBlankLines(t *testing.T) {
	t.Parallel()

	src := "code();\n\n\n//# sourceMappingURL=data:application/json;base64,eyJhIjoxfQ=="
	m, ok := Inline().First(src)
	require.True(t, ok)
	// the grammar's leading \s* swallows the blank lines
	assert.Equal(t, "\n\n//# sourceMappingURL=data:application/json;base64,eyJhIjoxfQ==", m.Text)
	assert.Equal(t, 4, m.Line)
}

func TestMatcherRemove(t *testing.T) {
	t.Parallel()

	src := "a();\n//# sourceMappingURL=foo.js.map\nb();\n/*# sourceMappingURL=bar.js.map */\n"
	assert.Equal(t, "a();\n\nb();\n\n", MapFile().Remove(src))
	assert.Equal(t, src, Inline().Remove(src))
}

func TestMatcherRegexpIsIndependent(t *testing.T) {
	t.Parallel()

	re := Inline().Regexp()
	re.Longest()
	assert.Equal(t, compile(CommentPattern).String(), re.String())
	assert.NotSame(t, re, Inline().Regexp())
	assert.Equal(t, compile(MapFileCommentPattern).String(), MapFile().Regexp().String())
	assert.True(t, MapFile().Regexp().MatchString("//# sourceMappingURL=foo.js.map\r\n"))
}

func TestMatcherLineTerminators(t *testing.T) {
	t.Parallel()

	const payload = "data:application/json;charset=utf-8;base64,eyJhIjoxfQ=="

	for name, eol := range map[string]string{
		"crlf":                "\r\n",
		"cr":                  "\r",
		"line separator":      "\u2028",
		"paragraph separator": "\u2029",
	} {
		eol := eol
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src := "console.log(1);\n//# sourceMappingURL=foo.js.map" + eol
			m, ok := MapFile().First(src)
			require.True(t, ok)
			assert.Equal(t, "foo.js.map", m.Payload)
			assert.Equal(t, "//# sourceMappingURL=foo.js.map", m.Text)
			assert.Equal(t, src[m.Start:m.End], m.Text)
			assert.Equal(t, 2, m.Line)

			src = "console.log(1);\n/*# sourceMappingURL=foo.js.map */" + eol
			m, ok = MapFile().First(src)
			require.True(t, ok)
			assert.Equal(t, "foo.js.map", m.Payload)

			src = "console.log(1);\n//# sourceMappingURL=" + payload + eol
			m, ok = Inline().First(src)
			require.True(t, ok)
			assert.Equal(t, payload, m.Payload)
			assert.Equal(t, "//# sourceMappingURL="+payload, m.Text)
			assert.Equal(t, "console.log(1);\n"+eol, Inline().Remove(src))
		})
	}
}

func TestMatcherCRLFSource(t *testing.T) {
	t.Parallel()

	src := "a();\r\n//# sourceMappingURL=first.js.map\r\nb();\r\n/*# sourceMappingURL=second.js.map */\r\n"
	matches := MapFile().FindAll(src)
	require.Len(t, matches, 2)
	assert.Equal(t, "first.js.map", matches[0].Payload)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, "second.js.map", matches[1].Payload)
	assert.Equal(t, 4, matches[1].Line)
	assert.Equal(t, "a();\r\n\r\nb();\r\n\r\n", MapFile().Remove(src))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inline", KindInline.String())
	assert.Equal(t, "file", KindMapFile.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.Equal(t, KindInline, Inline().Kind())
	assert.Equal(t, KindMapFile, MapFile().Kind())
}
