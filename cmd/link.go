package cmd

import (
	"github.com/spf13/cobra"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/sourcemap"
)

type cmdLink struct {
	gs *state.GlobalState
}

func (c *cmdLink) run(cmd *cobra.Command, args []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	comment := sourcemap.GenerateMapFileComment(args[0], sourcemap.CommentOptions{Multiline: conf.Multiline.Bool})
	return c.gs.Console.Print(comment + "\n")
}

func getCmdLink(gs *state.GlobalState) *cobra.Command {
	c := &cmdLink{gs: gs}

	exampleText := getExampleText(gs, `
  # Reference a map file from a bundle
  {{.}} link bundle.js.map >> dist/bundle.js`[1:])

	linkCmd := &cobra.Command{
		Use:     "link <map-file>",
		Short:   "Print a comment that references a map file",
		Example: exampleText,
		Args:    exactArgsWithMsg(1, "arg should be the path of the map file, relative to the generated file"),
		RunE:    c.run,
	}

	linkCmd.Flags().SortFlags = false
	linkCmd.Flags().AddFlagSet(configFlagSet())

	return linkCmd
}
