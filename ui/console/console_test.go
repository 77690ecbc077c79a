package console

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(isTTY, colorize bool) (*Console, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	return New(
		NewWriter(stdout, nil, isTTY),
		NewWriter(&bytes.Buffer{}, nil, isTTY),
		strings.NewReader(""),
		colorize,
	), stdout
}

func TestConsoleTheme(t *testing.T) {
	t.Parallel()

	t.Run("tty with colors", func(t *testing.T) {
		t.Parallel()
		c, _ := newTestConsole(true, true)
		assert.True(t, c.IsTTY)
		assert.Equal(t, "\x1b[32minline\x1b[0m", c.Inline("inline"))
		assert.Equal(t, "\x1b[33mfile\x1b[0m", c.File("file"))
		assert.Equal(t, "\x1b[36mtext\x1b[0m", c.ApplyTheme("text"))
		assert.True(t, strings.HasPrefix(c.Faint("faint"), "\x1b[2mfaint\x1b["))
	})

	for name, tc := range map[string]struct{ isTTY, colorize bool }{
		"tty without colors": {isTTY: true, colorize: false},
		"no tty":             {isTTY: false, colorize: true},
	} {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestConsole(tc.isTTY, tc.colorize)
			assert.Equal(t, "inline", c.Inline("inline"))
			assert.Equal(t, "file", c.File("file"))
			assert.Equal(t, "text", c.ApplyTheme("text"))
			assert.Equal(t, "faint", c.Faint("faint"))
		})
	}
}

func TestConsolePrint(t *testing.T) {
	t.Parallel()

	c, stdout := newTestConsole(false, false)
	require.NoError(t, c.Print("a"))
	require.NoError(t, c.Printf(" %s=%d\n", "b", 2))
	require.NoError(t, c.PrintYAML(map[string]any{"version": 3, "sources": []string{"a.ts"}}))
	assert.Equal(t, "a b=2\nsources:\n    - a.ts\nversion: 3\n", stdout.String())
}

func TestConsoleTruncate(t *testing.T) {
	t.Parallel()

	c, _ := newTestConsole(false, false)
	width, err := c.TermWidth()
	require.NoError(t, err)
	assert.Equal(t, defaultTermWidth, width)

	short := "data:application/json;base64,e30="
	assert.Equal(t, short, c.Truncate(short, 10))

	long := strings.Repeat("A", 200)
	got := c.Truncate(long, 10)
	assert.Len(t, got, defaultTermWidth-10)
	assert.True(t, strings.HasSuffix(got, ellipsis))

	assert.Len(t, c.Truncate(long, 1000), minPayloadWidth)

	wide := "//# sourceMappingURL=" + strings.Repeat("é", 100) + "/日本語.js.map"
	got = c.Truncate(wide, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, defaultTermWidth-10, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "éé"+ellipsis))

	fits := strings.Repeat("日", defaultTermWidth-10)
	assert.Equal(t, fits, c.Truncate(fits, 10))
}
