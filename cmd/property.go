package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/errext"
	"go.k6.io/srcmap/errext/exitcodes"
	"go.k6.io/srcmap/sourcemap"
)

type cmdGet struct {
	gs *state.GlobalState
}

func (c *cmdGet) run(cmd *cobra.Command, args []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	sf, err := readSource(c.gs, args[:1])
	if err != nil {
		return err
	}

	conv, err := loadSourceMap(c.gs, sf, conf.Kind.String)
	if err != nil {
		return err
	}

	key := args[1]
	v, ok := conv.GetProperty(key)
	if !ok {
		return errext.WithHint(fmt.Errorf("the source map has no %q property", key),
			"only top-level properties can be read")
	}
	return printValue(c.gs, conf, v)
}

func getCmdGet(gs *state.GlobalState) *cobra.Command {
	c := &cmdGet{gs: gs}

	exampleText := getExampleText(gs, `
  # Print the sources of the inline source map
  {{.}} get dist/bundle.js sources`[1:])

	getCmd := &cobra.Command{
		Use:     "get <file> <key>",
		Short:   "Print a top-level property of a source map",
		Example: exampleText,
		Args:    exactArgsWithMsg(2, "args should be the generated file and the property name"),
		RunE:    c.run,
	}

	getCmd.Flags().SortFlags = false
	getCmd.Flags().AddFlagSet(configFlagSet())

	return getCmd
}

type cmdSet struct {
	gs      *state.GlobalState
	add     bool
	inPlace bool
}

func (c *cmdSet) run(cmd *cobra.Command, args []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	key, rawValue := args[1], args[2]
	var value any
	if err = json.Unmarshal([]byte(rawValue), &value); err != nil {
		return errext.WithExitCodeIfNone(
			errext.WithHint(fmt.Errorf("invalid value for %q: %w", key, err),
				`the value must be JSON, quote strings like '"bar"'`),
			exitcodes.InvalidConfig)
	}

	sf, err := readSource(c.gs, args[:1])
	if err != nil {
		return err
	}

	m, ok := sourcemap.Inline().Last(sf.Data)
	if !ok {
		return errNoSourceMap
	}
	conv, err := sourcemap.FromComment(m.Text)
	if err != nil {
		return classifyError(err)
	}

	if c.add {
		if err = conv.AddProperty(key, value); err != nil {
			return classifyError(err)
		}
	} else {
		conv.SetProperty(key, value)
	}

	comment, err := conv.ToComment(sourcemap.CommentOptions{Multiline: conf.Multiline.Bool})
	if err != nil {
		return err
	}
	c.gs.Logger.WithField("key", key).Debug("Updated the inline source map")

	return writeSource(c.gs, sf, replaceMatch(sf.Data, m, comment), c.inPlace)
}

func getCmdSet(gs *state.GlobalState) *cobra.Command {
	c := &cmdSet{gs: gs}

	exampleText := getExampleText(gs, `
  # Set the file property of the inline source map
  {{.}} set -w dist/bundle.js file '"bundle.js"'

  # Add a property, failing if it's already there
  {{.}} set --add dist/bundle.js sourceRoot '"/src"'`[1:])

	setCmd := &cobra.Command{
		Use:   "set <file> <key> <json>",
		Short: "Change a top-level property of an inline source map",
		Long: `Change a top-level property of an inline source map.

The last inline sourceMappingURL comment of the file is decoded, the property is
set to the given JSON value and the comment is replaced with a re-encoded one.`,
		Example: exampleText,
		Args:    exactArgsWithMsg(3, "args should be the generated file, the property name and its JSON value"),
		RunE:    c.run,
	}

	setCmd.Flags().SortFlags = false
	setCmd.Flags().AddFlagSet(configFlagSet())
	setCmd.Flags().BoolVar(&c.add, "add", false, "fail if the property already exists instead of overwriting it")
	setCmd.Flags().BoolVarP(&c.inPlace, "write", "w", false, "write the result to the file instead of stdout")

	return setCmd
}
