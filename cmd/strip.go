package cmd

import (
	"github.com/spf13/cobra"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/sourcemap"
)

type cmdStrip struct {
	gs      *state.GlobalState
	inPlace bool
}

func (c *cmdStrip) run(cmd *cobra.Command, args []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	sf, err := readSource(c.gs, args)
	if err != nil {
		return err
	}

	out := sf.Data
	if conf.Kind.String != kindFile {
		out = sourcemap.RemoveComments(out)
	}
	if conf.Kind.String != kindInline {
		out = sourcemap.RemoveMapFileComments(out)
	}
	if out == sf.Data {
		c.gs.Logger.WithField("file", sf.Name).Debug("No source map comments to remove")
	}

	return writeSource(c.gs, sf, out, c.inPlace)
}

func getCmdStrip(gs *state.GlobalState) *cobra.Command {
	c := &cmdStrip{gs: gs}

	exampleText := getExampleText(gs, `
  # Print a bundle without any source map comments
  {{.}} strip dist/bundle.js

  # Only remove inline source maps, rewriting the file
  {{.}} strip --kind inline -w dist/bundle.js`[1:])

	stripCmd := &cobra.Command{
		Use:     "strip [file]",
		Short:   "Remove source map comments from a generated file",
		Example: exampleText,
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.run,
	}

	stripCmd.Flags().SortFlags = false
	stripCmd.Flags().AddFlagSet(configFlagSet())
	stripCmd.Flags().BoolVarP(&c.inPlace, "write", "w", false, "write the result to the file instead of stdout")

	return stripCmd
}
