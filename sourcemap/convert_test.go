package sourcemap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	b64A = "eyJhIjoxfQ==" // {"a":1}
	b64B = "eyJiIjoyfQ==" // {"b":2}
)

func TestFromSource(t *testing.T) {
	t.Parallel()

	t.Run("last comment wins", func(t *testing.T) {
		t.Parallel()
		src := "var a = 1;\n" +
			"//# sourceMappingURL=data:application/json;base64," + b64A + "\n" +
			"var b = 2;\n" +
			"//# sourceMappingURL=data:application/json;charset=utf-8;base64," + b64B + "\n"
		c, err := FromSource(src)
		require.NoError(t, err)
		require.NotNil(t, c)
		obj, err := c.ToObject()
		require.NoError(t, err)
		assert.Equal(t, Document{"b": float64(2)}, obj)
	})

	t.Run("block comment", func(t *testing.T) {
		t.Parallel()
		src := "var a = 1;\n/*# sourceMappingURL=data:application/json;base64," + b64A + " */"
		c, err := FromSource(src)
		require.NoError(t, err)
		require.NotNil(t, c)
		v, ok := c.GetProperty("a")
		require.True(t, ok)
		assert.Equal(t, float64(1), v)
	})

	t.Run("legacy marker", func(t *testing.T) {
		t.Parallel()
		c, err := FromSource("//@ sourceMappingURL=data:text/json;base64," + b64B)
		require.NoError(t, err)
		require.NotNil(t, c)
		v, _ := c.GetProperty("b")
		assert.Equal(t, float64(2), v)
	})

	t.Run("no comment", func(t *testing.T) {
		t.Parallel()
		c, err := FromSource("plain text, no comment")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("map file comment is ignored", func(t *testing.T) {
		t.Parallel()
		c, err := FromSource("var a;\n//# sourceMappingURL=foo.js.map")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		t.Parallel()
		c, err := FromSource("//# sourceMappingURL=data:application/json;base64,e30*")
		require.Error(t, err)
		assert.Nil(t, c)
		var derr *DecodeError
		assert.True(t, errors.As(err, &derr))
	})
}

func TestFromComment(t *testing.T) {
	t.Parallel()

	comments := map[string]string{
		"line":           "//# sourceMappingURL=data:application/json;charset=utf-8;base64," + b64A,
		"block":          "/*# sourceMappingURL=data:application/json;charset=utf-8;base64," + b64A + " */",
		"tight block":    "/*# sourceMappingURL=data:application/json;base64," + b64A + "*/",
		"surrounding ws": "\n  //# sourceMappingURL=data:application/json;base64," + b64A + "  \n",
	}
	for name, comment := range comments {
		comment := comment
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c, err := FromComment(comment)
			require.NoError(t, err)
			obj, err := c.ToObject()
			require.NoError(t, err)
			assert.Equal(t, Document{"a": float64(1)}, obj)
		})
	}
}

func TestFromJSONAndBase64(t *testing.T) {
	t.Parallel()

	c, err := FromJSON(`{"version":3,"sources":["a.js"]}`)
	require.NoError(t, err)
	v, _ := c.GetProperty("sources")
	assert.Equal(t, []any{"a.js"}, v)

	c, err = FromBase64(b64B)
	require.NoError(t, err)
	v, _ = c.GetProperty("b")
	assert.Equal(t, float64(2), v)

	_, err = FromJSON(`{"version":`)
	assert.Error(t, err)

	for _, notObject := range []string{`[1,2]`, `"map"`, `3`, `true`, `null`} {
		_, err = FromJSON(notObject)
		assert.True(t, errors.Is(err, ErrNotObject), notObject)
	}
}

func TestRemoveComments(t *testing.T) {
	t.Parallel()

	src := "var a = 1;\n" +
		"//# sourceMappingURL=data:application/json;base64," + b64A + "\n" +
		"var b = 2;"
	assert.Equal(t, "var a = 1;\n\nvar b = 2;", RemoveComments(src))

	both := "x();\n/*# sourceMappingURL=data:application/json;base64," + b64A + " */\n" +
		"//@ sourceMappingURL=data:application/json;base64," + b64B
	assert.Equal(t, "x();\n\n", RemoveComments(both))

	assert.Equal(t, "untouched", RemoveComments("untouched"))

	crlf := "x;\r\n//# sourceMappingURL=data:application/json;base64," + b64A + "\r\n"
	assert.Equal(t, "x;\r\n\r\n", RemoveComments(crlf))
}

func TestRemoveMapFileComments(t *testing.T) {
	t.Parallel()

	src := "var a = 1;\n//# sourceMappingURL=foo.js.map\nvar b = 2;\n/*# sourceMappingURL=bar.js.map */"
	assert.Equal(t, "var a = 1;\n\nvar b = 2;\n", RemoveMapFileComments(src))
}

func TestGenerateMapFileComment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "//# sourceMappingURL=foo.js.map", GenerateMapFileComment("foo.js.map", CommentOptions{}))
	assert.Equal(t, "/*# sourceMappingURL=foo.js.map */",
		GenerateMapFileComment("foo.js.map", CommentOptions{Multiline: true}))

	// generated comments are recognized by the map file grammar
	for _, multiline := range []bool{false, true} {
		v, ok := GetMapFileCommentValue(GenerateMapFileComment("dist/foo.js.map", CommentOptions{Multiline: multiline}))
		require.True(t, ok)
		assert.Equal(t, "dist/foo.js.map", v)
	}
}

func TestGetCommentValue(t *testing.T) {
	t.Parallel()

	src := "//# sourceMappingURL=data:application/json;base64," + b64A + "\n" +
		"//# sourceMappingURL=data:application/json;base64," + b64B
	v, ok := GetCommentValue(src)
	require.True(t, ok)
	assert.Equal(t, "data:application/json;base64,"+b64A, v)

	v, ok = GetCommentValue("nothing")
	assert.False(t, ok)
	assert.Empty(t, v)

	v, ok = GetCommentValue("x;\r\n//# sourceMappingURL=data:application/json;base64," + b64A + "\r\n")
	require.True(t, ok)
	assert.Equal(t, "data:application/json;base64,"+b64A, v)

	c, err := FromSource("x;\r\n//# sourceMappingURL=data:application/json;base64," + b64A + "\r\n")
	require.NoError(t, err)
	v2, ok := c.GetProperty("a")
	require.True(t, ok)
	assert.Equal(t, float64(1), v2)
}

func TestGetMapFileCommentValue(t *testing.T) {
	t.Parallel()

	v, ok := GetMapFileCommentValue("//# sourceMappingURL=first.js.map\n//# sourceMappingURL=second.js.map")
	require.True(t, ok)
	assert.Equal(t, "first.js.map", v)

	v, ok = GetMapFileCommentValue("a();\n/*@ sourceMappingURL=block.js.map */")
	require.True(t, ok)
	assert.Equal(t, "block.js.map", v)

	_, ok = GetMapFileCommentValue("nothing")
	assert.False(t, ok)

	v, ok = GetMapFileCommentValue("console.log(1);\r\n//# sourceMappingURL=foo.js.map\r\n")
	require.True(t, ok)
	assert.Equal(t, "foo.js.map", v)

	crlf := "var a = 1;\r\n//# sourceMappingURL=foo.js.map\r\nvar b = 2;\r\n"
	assert.Equal(t, "var a = 1;\r\n\r\nvar b = 2;\r\n", RemoveMapFileComments(crlf))
}
