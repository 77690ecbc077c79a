// Package state contains the types and functionality used for keeping track
// of the global state of a srcmap invocation.
package state

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"

	"go.k6.io/srcmap/lib/fsext"
	"go.k6.io/srcmap/ui/console"
)

// GlobalState contains the GlobalOptions and accessors for most of the global
// process-external state like CLI arguments, env vars, standard input, output
// and error, etc. In practice, most of it is normally accessed through the `os`
// package from the Go stdlib.
//
// We group them here so we can prevent direct access to them from the rest of
// the codebase. This gives us the ability to mock them and have robust and
// easy-to-write integration-like tests to check the srcmap end-to-end behavior
// in any simulated conditions.
type GlobalState struct {
	Ctx context.Context

	FS         fsext.Fs
	Getwd      func() (string, error)
	BinaryName string
	CmdArgs    []string
	Env        map[string]string

	DefaultFlags, Flags GlobalOptions

	Console *console.Console
	Stdin   io.Reader

	OSExit func(int)

	Logger *logrus.Logger
}

// NewGlobalState returns a new GlobalState with the given ctx.
// Either this function or a test mock of the GlobalState should be called
// before any other code is executed.
func NewGlobalState(ctx context.Context) *GlobalState {
	env := BuildEnvMap(os.Environ())
	termType := env["TERM"]

	stdoutTTY := console.IsTerminal(os.Stdout, termType)
	stderrTTY := console.IsTerminal(os.Stderr, termType)

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = ".config"
	}
	defaultFlags := GetDefaultGlobalOptions(configDir)
	globalFlags := consolidateGlobalFlags(defaultFlags, env)

	var stdout, stderr io.Writer = colorable.NewColorableStdout(), colorable.NewColorableStderr()
	if globalFlags.NoColor {
		stdout, stderr = colorable.NewNonColorable(os.Stdout), colorable.NewNonColorable(os.Stderr)
	}
	cons := console.New(
		console.NewWriter(stdout, os.Stdout, stdoutTTY),
		console.NewWriter(stderr, os.Stderr, stderrTTY),
		os.Stdin,
		!globalFlags.NoColor,
	)

	logger := &logrus.Logger{
		Out: cons.Stderr,
		Formatter: &logrus.TextFormatter{
			ForceColors:   stderrTTY,
			DisableColors: !stderrTTY || globalFlags.NoColor,
		},
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}

	return &GlobalState{
		Ctx:          ctx,
		FS:           fsext.NewOsFs(),
		Getwd:        os.Getwd,
		BinaryName:   "srcmap",
		CmdArgs:      os.Args,
		Env:          env,
		DefaultFlags: defaultFlags,
		Flags:        globalFlags,
		Console:      cons,
		Stdin:        os.Stdin,
		OSExit:       os.Exit,
		Logger:       logger,
	}
}
