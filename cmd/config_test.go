package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

func TestConfigApply(t *testing.T) {
	t.Parallel()

	conf := NewConfig()
	assert.Equal(t, int64(2), conf.Indent.Int64)
	assert.False(t, conf.Indent.Valid)
	assert.Equal(t, formatJSON, conf.Format.String)

	conf = conf.Apply(Config{Indent: null.IntFrom(0), Kind: null.StringFrom(kindFile)})
	assert.Equal(t, null.IntFrom(0), conf.Indent)
	assert.Equal(t, null.StringFrom(kindFile), conf.Kind)
	assert.Equal(t, formatJSON, conf.Format.String)
	assert.False(t, conf.Multiline.Bool)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewConfig().Validate())

	err := NewConfig().Apply(Config{
		Indent: null.IntFrom(-1),
		Format: null.StringFrom("toml"),
		Kind:   null.StringFrom("any"),
	}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent must not be negative")
	assert.Contains(t, err.Error(), `unsupported format "toml"`)
	assert.Contains(t, err.Error(), `unsupported kind "any"`)
}

func TestReadEnvConfig(t *testing.T) {
	t.Parallel()

	conf, err := readEnvConfig(map[string]string{
		"SRCMAP_INDENT":    "4",
		"SRCMAP_MULTILINE": "true",
		"SRCMAP_FORMAT":    "yaml",
		"UNRELATED":        "1",
	})
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(4), conf.Indent)
	assert.Equal(t, null.BoolFrom(true), conf.Multiline)
	assert.Equal(t, null.StringFrom(formatYAML), conf.Format)
	assert.False(t, conf.Kind.Valid)

	_, err = readEnvConfig(map[string]string{"SRCMAP_INDENT": "wide"})
	assert.Error(t, err)
}

func TestGetConfigFromFlags(t *testing.T) {
	t.Parallel()

	flags := configFlagSet()
	require.NoError(t, flags.Parse([]string{"--indent", "0", "-k", "inline"}))

	conf := getConfig(flags)
	assert.Equal(t, null.IntFrom(0), conf.Indent)
	assert.Equal(t, null.StringFrom(kindInline), conf.Kind)
	assert.False(t, conf.Format.Valid)
	assert.False(t, conf.Multiline.Valid)
}
