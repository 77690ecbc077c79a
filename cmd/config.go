package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/mstoykov/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/guregu/null.v3"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/errext"
	"go.k6.io/srcmap/errext/exitcodes"
	"go.k6.io/srcmap/lib/fsext"
)

// Accepted values of Config.Format and Config.Kind.
const (
	formatJSON = "json"
	formatYAML = "yaml"

	kindAuto   = "auto"
	kindInline = "inline"
	kindFile   = "file"
)

// Config holds the options shared by the srcmap sub-commands that read,
// print or produce source maps.
type Config struct {
	Indent    null.Int    `json:"indent" envconfig:"SRCMAP_INDENT"`
	Multiline null.Bool   `json:"multiline" envconfig:"SRCMAP_MULTILINE"`
	Format    null.String `json:"format" envconfig:"SRCMAP_FORMAT"`
	Kind      null.String `json:"kind" envconfig:"SRCMAP_KIND"`
}

// NewConfig creates a new Config instance with default values for all fields.
func NewConfig() Config {
	return Config{
		Indent:    null.NewInt(2, false),
		Multiline: null.NewBool(false, false),
		Format:    null.NewString(formatJSON, false),
		Kind:      null.NewString(kindAuto, false),
	}
}

// Apply saves config non-zero config values from the passed config in the receiver.
func (c Config) Apply(cfg Config) Config {
	if cfg.Indent.Valid {
		c.Indent = cfg.Indent
	}
	if cfg.Multiline.Valid {
		c.Multiline = cfg.Multiline
	}
	if cfg.Format.Valid {
		c.Format = cfg.Format
	}
	if cfg.Kind.Valid {
		c.Kind = cfg.Kind
	}
	return c
}

// Validate checks that the configured values are supported.
func (c Config) Validate() error {
	var errs []error
	if c.Indent.Int64 < 0 {
		errs = append(errs, fmt.Errorf("indent must not be negative, got %d", c.Indent.Int64))
	}
	switch c.Format.String {
	case formatJSON, formatYAML:
	default:
		errs = append(errs, fmt.Errorf("unsupported format %q, expected %q or %q", c.Format.String, formatJSON, formatYAML))
	}
	switch c.Kind.String {
	case kindAuto, kindInline, kindFile:
	default:
		errs = append(errs, fmt.Errorf("unsupported kind %q, expected %q, %q or %q",
			c.Kind.String, kindAuto, kindInline, kindFile))
	}
	return errors.Join(errs...)
}

func configFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Int64("indent", 2, "number of spaces to indent printed JSON with, 0 for compact output")
	flags.Bool("multiline", false, "produce /*# ... */ block comments instead of //# line comments")
	flags.StringP("format", "f", formatJSON, "output format of printed source maps: json or yaml")
	flags.StringP("kind", "k", kindAuto, "which comments to look for: auto, inline or file")
	return flags
}

// Gets configuration from CLI flags.
func getConfig(flags *pflag.FlagSet) Config {
	return Config{
		Indent:    getNullInt64(flags, "indent"),
		Multiline: getNullBool(flags, "multiline"),
		Format:    getNullString(flags, "format"),
		Kind:      getNullString(flags, "kind"),
	}
}

// readDiskConfig reads the JSON config file. A missing file is only an error
// if its path was explicitly changed from the default.
func readDiskConfig(gs *state.GlobalState) (Config, error) {
	data, err := fsext.ReadFile(gs.FS, gs.Flags.ConfigFilePath)
	if errors.Is(err, fs.ErrNotExist) && gs.Flags.ConfigFilePath == gs.DefaultFlags.ConfigFilePath {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("couldn't read the config file %q: %w", gs.Flags.ConfigFilePath, err)
	}

	var conf Config
	if err := json.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("couldn't parse the config file %q: %w", gs.Flags.ConfigFilePath, err)
	}
	gs.Logger.WithField("path", gs.Flags.ConfigFilePath).Debug("Loaded config file")
	return conf, nil
}

// Reads configuration variables from the environment.
func readEnvConfig(env map[string]string) (Config, error) {
	conf := Config{}
	err := envconfig.Process("", &conf, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	return conf, err
}

// getConsolidatedConfig assembles the final configuration with the following
// priority: CLI flags > environment variables > JSON config file > defaults.
func getConsolidatedConfig(gs *state.GlobalState, flags *pflag.FlagSet) (Config, error) {
	fileConf, err := readDiskConfig(gs)
	if err != nil {
		return Config{}, errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
	}
	envConf, err := readEnvConfig(gs.Env)
	if err != nil {
		return Config{}, errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
	}

	conf := NewConfig().Apply(fileConf).Apply(envConf).Apply(getConfig(flags))
	if err := conf.Validate(); err != nil {
		return Config{}, errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
	}
	return conf, nil
}
