package cmd

import (
	"github.com/spf13/cobra"

	"go.k6.io/srcmap/cmd/state"
)

// cmdExtract handles the `srcmap extract` sub-command
type cmdExtract struct {
	gs *state.GlobalState
}

func (c *cmdExtract) run(cmd *cobra.Command, args []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	sf, err := readSource(c.gs, args)
	if err != nil {
		return err
	}

	conv, err := loadSourceMap(c.gs, sf, conf.Kind.String)
	if err != nil {
		return err
	}
	return printSourceMap(c.gs, conf, conv)
}

func getCmdExtract(gs *state.GlobalState) *cobra.Command {
	c := &cmdExtract{gs: gs}

	exampleText := getExampleText(gs, `
  # Print the inline source map of a bundle, or the map file it references
  {{.}} extract dist/bundle.js

  # Only look at map file references and print YAML
  {{.}} extract --kind file --format yaml dist/bundle.js

  # Read the generated code from stdin
  cat dist/bundle.js | {{.}} extract --indent 0 -`[1:])

	extractCmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the source map of a generated file",
		Long: `Print the source map of a generated file.

The last inline sourceMappingURL comment is decoded and printed. If the file has
none, the map file referenced by its last sourceMappingURL comment is read
instead, relative to the directory of the generated file.`,
		Example: exampleText,
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.run,
	}

	extractCmd.Flags().SortFlags = false
	extractCmd.Flags().AddFlagSet(configFlagSet())

	return extractCmd
}
