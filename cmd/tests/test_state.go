package tests

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/internal/lib/testutils"
	"go.k6.io/srcmap/lib/fsext"
	"go.k6.io/srcmap/ui/console"
)

// GlobalTestState is a wrapper around GlobalState for use in tests.
type GlobalTestState struct {
	*state.GlobalState
	Cancel func()

	Stdout, Stderr *bytes.Buffer
	LoggerHook     *testutils.SimpleLogrusHook

	Cwd string

	ExpectedExitCode int
}

// NewGlobalTestState returns an initialized GlobalTestState, mocking all
// GlobalState fields for use in tests.
func NewGlobalTestState(tb testing.TB) *GlobalTestState {
	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)

	fs := fsext.NewMemMapFs()
	cwd := "/test/"
	if runtime.GOOS == "windows" {
		cwd = "c:\\test\\"
	}
	require.NoError(tb, fs.MkdirAll(cwd, 0o755))

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.Out = testutils.NewTestOutput(tb)
	hook := testutils.NewLogHook()
	logger.AddHook(hook)

	ts := &GlobalTestState{
		Cwd:        cwd,
		Cancel:     cancel,
		LoggerHook: hook,
		Stdout:     new(bytes.Buffer),
		Stderr:     new(bytes.Buffer),
	}

	osExitCalled := false
	defaultOsExitHandle := func(exitCode int) {
		cancel()
		osExitCalled = true
		assert.Equal(tb, ts.ExpectedExitCode, exitCode)
	}

	tb.Cleanup(func() {
		if ts.ExpectedExitCode > 0 {
			// Ensure that, if we expected to receive an error, our `os.Exit()` mock
			// function was actually called.
			assert.Truef(tb,
				osExitCalled,
				"expected exit code %d, but the os.Exit() mock was not called",
				ts.ExpectedExitCode,
			)
		}
	})

	defaultFlags := state.GetDefaultGlobalOptions(".config")
	defaultFlags.NoColor = true

	cons := console.New(
		console.NewWriter(ts.Stdout, nil, false),
		console.NewWriter(ts.Stderr, nil, false),
		new(bytes.Buffer),
		false,
	)

	ts.GlobalState = &state.GlobalState{
		Ctx:          ctx,
		FS:           fs,
		Getwd:        func() (string, error) { return ts.Cwd, nil },
		BinaryName:   "srcmap",
		CmdArgs:      []string{},
		Env:          map[string]string{},
		DefaultFlags: defaultFlags,
		Flags:        defaultFlags,
		Console:      cons,
		Stdin:        cons.Stdin,
		OSExit:       defaultOsExitHandle,
		Logger:       logger,
	}

	return ts
}

// SetStdin replaces the standard input of the srcmap invocation.
func (ts *GlobalTestState) SetStdin(s string) {
	ts.Stdin = bytes.NewBufferString(s)
	ts.Console.Stdin = ts.Stdin
}

// WriteFile creates a file relative to the working directory.
func (ts *GlobalTestState) WriteFile(tb testing.TB, name, data string) {
	require.NoError(tb, fsext.WriteFile(ts.FS, ts.Cwd+name, []byte(data), 0o644))
}

// ReadFile returns a file relative to the working directory.
func (ts *GlobalTestState) ReadFile(tb testing.TB, name string) string {
	return testutils.ReadFile(tb, ts.FS, ts.Cwd+name)
}
