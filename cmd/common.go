package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/guregu/null.v3"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/errext"
	"go.k6.io/srcmap/errext/exitcodes"
	"go.k6.io/srcmap/lib/fsext"
	"go.k6.io/srcmap/sourcemap"
)

// Panic if the given error is not nil.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

// TODO: refactor the CLI config so these functions aren't needed - they
// can mask errors by failing only at runtime, not at compile time
func getNullBool(flags *pflag.FlagSet, key string) null.Bool {
	v, err := flags.GetBool(key)
	if err != nil {
		panic(err)
	}
	return null.NewBool(v, flags.Changed(key))
}

func getNullInt64(flags *pflag.FlagSet, key string) null.Int {
	v, err := flags.GetInt64(key)
	if err != nil {
		panic(err)
	}
	return null.NewInt(v, flags.Changed(key))
}

func getNullString(flags *pflag.FlagSet, key string) null.String {
	v, err := flags.GetString(key)
	if err != nil {
		panic(err)
	}
	return null.NewString(v, flags.Changed(key))
}

func exactArgsWithMsg(n int, msg string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("accepts %d arg(s), received %d: %s", n, len(args), msg)
		}
		return nil
	}
}

func getExampleText(gs *state.GlobalState, tpl string) string {
	var exampleText bytes.Buffer
	exampleTemplate := template.Must(template.New("").Parse(tpl))

	if err := exampleTemplate.Execute(&exampleText, gs.BinaryName); err != nil {
		gs.Logger.WithError(err).Error("Error during help example generation")
	}

	return exampleText.String()
}

func printToStdout(gs *state.GlobalState, s string) {
	if err := gs.Console.Print(s); err != nil {
		gs.Logger.WithError(err).Error("could not print to stdout")
	}
}

// sourceFile is a generated file read from disk or stdin.
type sourceFile struct {
	// Name is the path given on the command line, or "-" for stdin.
	Name string
	// Path is the absolute path of the file, empty for stdin.
	Path string
	// Dir is the directory map file references are resolved against.
	Dir  string
	Data string
}

func (sf sourceFile) isStdin() bool {
	return sf.Name == "-"
}

// readSource reads the file named by the first argument, or stdin if there
// is no argument or it's "-". Relative paths are resolved against the working
// directory of the GlobalState.
func readSource(gs *state.GlobalState, args []string) (sourceFile, error) {
	sf := sourceFile{Name: "-"}
	if len(args) > 0 && args[0] != "" {
		sf.Name = args[0]
	}

	pwd, err := gs.Getwd()
	if err != nil {
		return sourceFile{}, err
	}

	var data []byte
	if sf.isStdin() {
		if sf.Dir, err = fsext.Resolve(pwd, "."); err != nil {
			return sourceFile{}, err
		}
		data, err = io.ReadAll(gs.Stdin)
	} else {
		if sf.Path, err = fsext.Resolve(pwd, sf.Name); err != nil {
			return sourceFile{}, err
		}
		sf.Dir = filepath.Dir(sf.Path)
		data, err = fsext.ReadFile(gs.FS, sf.Path)
	}
	if err != nil {
		return sourceFile{}, fmt.Errorf("couldn't read %q: %w", sf.Name, err)
	}
	sf.Data = string(data)

	gs.Logger.WithFields(map[string]interface{}{"file": sf.Name, "dir": sf.Dir}).Debug("Read source file")
	return sf, nil
}

// writeSource either prints the modified source or, when inPlace is set,
// overwrites the original file with it.
func writeSource(gs *state.GlobalState, sf sourceFile, data string, inPlace bool) error {
	if !inPlace {
		printToStdout(gs, data)
		return nil
	}
	if sf.isStdin() {
		return errext.WithExitCodeIfNone(
			errors.New("can't write the result in place when reading from stdin"), exitcodes.InvalidConfig)
	}

	perm := os.FileMode(0o644)
	if info, err := gs.FS.Stat(sf.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := fsext.WriteFile(gs.FS, sf.Path, []byte(data), perm); err != nil {
		return fmt.Errorf("couldn't write %q: %w", sf.Name, err)
	}
	gs.Logger.WithField("file", sf.Name).Debug("Rewrote source file")
	return nil
}

// errNoSourceMap is returned when a command needs a source map comment but
// the input has none.
var errNoSourceMap = errext.WithExitCodeIfNone(
	errext.WithHint(errors.New("no source map comment found"),
		"the input has no //# sourceMappingURL= or /*# sourceMappingURL= */ comment"),
	exitcodes.NoSourceMap,
)

// classifyError attaches exit codes and hints to errors from the sourcemap
// package.
func classifyError(err error) error {
	var (
		derr *sourcemap.DecodeError
		ferr *sourcemap.FileError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &derr):
		return errext.WithExitCodeIfNone(
			errext.WithHint(err, "the "+derr.Stage+" payload of the source map is corrupt"),
			exitcodes.DecodeFailed)
	case errors.As(err, &ferr):
		return errext.WithExitCodeIfNone(
			errext.WithHint(err, "map file paths are resolved relative to the directory of the source file"),
			exitcodes.MapFileUnreadable)
	case errors.Is(err, sourcemap.ErrPropertyExists):
		return errext.WithExitCodeIfNone(
			errext.WithHint(err, "drop --add to overwrite the existing value"),
			exitcodes.PropertyExists)
	case errors.Is(err, sourcemap.ErrNoComment):
		return errext.WithExitCodeIfNone(err, exitcodes.NoSourceMap)
	default:
		return err
	}
}
