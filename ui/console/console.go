// Package console owns the terminal facing output of srcmap: synchronized
// stdout/stderr writers, TTY detection, the colour theme and the structured
// printers used for decoded source maps.
package console

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Console enables synced writing to stdout and stderr ...
type Console struct {
	IsTTY          bool
	outMx          *sync.Mutex
	Stdout, Stderr *Writer
	Stdin          io.Reader
	theme          *theme
}

// New returns the pointer to a new Console value. Themes are only enabled if
// colorize is set and both outputs are terminals.
func New(stdout, stderr *Writer, stdin io.Reader, colorize bool) *Console {
	outMx := &sync.Mutex{}
	stdout.mutex, stderr.mutex = outMx, outMx
	isTTY := stdout.IsTTY && stderr.IsTTY

	var th *theme
	if isTTY && colorize {
		th = &theme{
			foreground: newColor(color.FgCyan),
			inline:     newColor(color.FgGreen),
			file:       newColor(color.FgYellow),
			faint:      newColor(color.Faint),
		}
	}

	return &Console{
		IsTTY:  isTTY,
		outMx:  outMx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  stdin,
		theme:  th,
	}
}

// IsTerminal reports whether f is an interactive terminal. A "dumb" termType
// is never treated as one.
func IsTerminal(f OSFile, termType string) bool {
	return termType != "dumb" && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// ApplyTheme adds ANSI color escape sequences to s if themes are enabled;
// otherwise it returns s unchanged.
func (c *Console) ApplyTheme(s string) string {
	if c.colorized() {
		return c.theme.foreground.Sprint(s)
	}
	return s
}

// Inline colours s as an inline source map payload.
func (c *Console) Inline(s string) string {
	if c.colorized() {
		return c.theme.inline.Sprint(s)
	}
	return s
}

// File colours s as a map file reference.
func (c *Console) File(s string) string {
	if c.colorized() {
		return c.theme.file.Sprint(s)
	}
	return s
}

// Faint renders s de-emphasized.
func (c *Console) Faint(s string) string {
	if c.colorized() {
		return c.theme.faint.Sprint(s)
	}
	return s
}

// Print writes s to stdout.
func (c *Console) Print(s string) error {
	if _, err := fmt.Fprint(c.Stdout, s); err != nil {
		return fmt.Errorf("could not print to stdout: %w", err)
	}
	return nil
}

// Printf writes s to stdout, formatted with optional arguments.
func (c *Console) Printf(s string, a ...interface{}) error {
	if _, err := fmt.Fprintf(c.Stdout, s, a...); err != nil {
		return fmt.Errorf("could not print to stdout: %w", err)
	}
	return nil
}

// PrintYAML marshals v to YAML, and writes the result to stdout. It returns an
// error if marshalling fails.
func (c *Console) PrintYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal YAML: %w", err)
	}
	return c.Print(string(data))
}

// TermWidth returns the terminal window width in characters. If the window size
// lookup fails, or if we're not running in a TTY (interactive terminal), the
// default value of 80 will be returned. err will be non-nil if the lookup fails.
func (c *Console) TermWidth() (int, error) {
	if !c.IsTTY || c.Stdout.File == nil {
		return defaultTermWidth, nil
	}

	width, _, err := term.GetSize(int(c.Stdout.File.Fd()))
	if !(width > 0) || err != nil {
		return defaultTermWidth, err
	}

	return width, nil
}

func (c *Console) colorized() bool {
	return c.theme != nil
}

// theme is a collection of colors supported by the console output.
type theme struct {
	foreground *color.Color
	inline     *color.Color
	file       *color.Color
	faint      *color.Color
}

// newColor returns the requested color with the given attributes.
func newColor(attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	c.EnableColor()
	return c
}

// Truncate shortens s so that, together with reserved characters of other
// content, it fits on a single terminal line. It never shortens s below
// minPayloadWidth characters. Lengths are counted in runes and s is only cut
// on a rune boundary.
func (c *Console) Truncate(s string, reserved int) string {
	width, _ := c.TermWidth() // on errors we get the default width
	limit := max(width-reserved, minPayloadWidth)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(ellipsis)
	for i := range s {
		if keep == 0 {
			return s[:i] + ellipsis
		}
		keep--
	}
	return s
}
