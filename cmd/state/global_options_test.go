package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsolidateGlobalFlags(t *testing.T) {
	t.Parallel()

	defaults := GetDefaultGlobalOptions("/home/me/.config")
	assert.Equal(t, filepath.Join("/home/me/.config", "srcmap", "config.json"), defaults.ConfigFilePath)

	testCases := map[string]struct {
		env      map[string]string
		expected GlobalOptions
	}{
		"no env": {
			env:      map[string]string{},
			expected: defaults,
		},
		"overrides": {
			env: map[string]string{
				"SRCMAP_CONFIG":     "/tmp/srcmap.json",
				"SRCMAP_LOG_OUTPUT": "stdout",
				"SRCMAP_LOG_FORMAT": "json",
				"SRCMAP_NO_COLOR":   "true",
			},
			expected: GlobalOptions{
				ConfigFilePath: "/tmp/srcmap.json",
				LogOutput:      "stdout",
				LogFormat:      "json",
				NoColor:        true,
			},
		},
		"empty NO_COLOR": {
			env: map[string]string{"NO_COLOR": ""},
			expected: GlobalOptions{
				ConfigFilePath: defaults.ConfigFilePath,
				LogOutput:      "stderr",
				LogFormat:      "text",
				NoColor:        true,
			},
		},
		"empty SRCMAP_NO_COLOR": {
			env:      map[string]string{"SRCMAP_NO_COLOR": ""},
			expected: defaults,
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, consolidateGlobalFlags(defaults, tc.env))
		})
	}
}

func TestBuildEnvMap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]string{
		"A":     "1",
		"EMPTY": "",
		"EQ":    "a=b",
		"BARE":  "",
	}, BuildEnvMap([]string{"A=1", "EMPTY=", "EQ=a=b", "BARE"}))
}
