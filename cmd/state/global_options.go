package state

import (
	"path/filepath"
	"strings"
)

const defaultConfigFileName = "config.json"

// GlobalOptions contains global config values that apply for all srcmap sub-commands.
type GlobalOptions struct {
	ConfigFilePath string
	NoColor        bool
	LogOutput      string
	LogFormat      string
	Verbose        bool
}

// GetDefaultGlobalOptions returns the default global flags.
func GetDefaultGlobalOptions(configDir string) GlobalOptions {
	return GlobalOptions{
		ConfigFilePath: filepath.Join(configDir, "srcmap", defaultConfigFileName),
		LogOutput:      "stderr",
		LogFormat:      "text",
	}
}

func consolidateGlobalFlags(defaultFlags GlobalOptions, env map[string]string) GlobalOptions {
	result := defaultFlags

	if val, ok := env["SRCMAP_CONFIG"]; ok {
		result.ConfigFilePath = val
	}
	if val, ok := env["SRCMAP_LOG_OUTPUT"]; ok {
		result.LogOutput = val
	}
	if val, ok := env["SRCMAP_LOG_FORMAT"]; ok {
		result.LogFormat = val
	}
	if env["SRCMAP_NO_COLOR"] != "" {
		result.NoColor = true
	}
	// Support https://no-color.org/, even an empty value should disable the
	// color output.
	if _, ok := env["NO_COLOR"]; ok {
		result.NoColor = true
	}
	return result
}

// BuildEnvMap returns a map from raw environment of the form "KEY=value".
func BuildEnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}
	return env
}
