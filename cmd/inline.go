package cmd

import (
	"github.com/spf13/cobra"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/sourcemap"
)

// cmdInline handles the `srcmap inline` sub-command, which embeds the map
// file referenced by a generated file into it.
type cmdInline struct {
	gs      *state.GlobalState
	inPlace bool
}

func (c *cmdInline) run(cmd *cobra.Command, args []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	sf, err := readSource(c.gs, args)
	if err != nil {
		return err
	}

	conv, err := loadSourceMap(c.gs, sf, kindFile)
	if err != nil {
		return err
	}

	comment, err := conv.ToComment(sourcemap.CommentOptions{Multiline: conf.Multiline.Bool})
	if err != nil {
		return err
	}

	out := sourcemap.RemoveComments(sourcemap.RemoveMapFileComments(sf.Data))
	return writeSource(c.gs, sf, appendComment(out, comment), c.inPlace)
}

func getCmdInline(gs *state.GlobalState) *cobra.Command {
	c := &cmdInline{gs: gs}

	exampleText := getExampleText(gs, `
  # Embed the map file referenced by bundle.js and print the result
  {{.}} inline dist/bundle.js

  # Rewrite the file, using a /*# */ comment for CSS
  {{.}} inline --multiline -w dist/styles.css`[1:])

	inlineCmd := &cobra.Command{
		Use:   "inline <file>",
		Short: "Replace a map file reference with an inline source map",
		Long: `Replace a map file reference with an inline source map.

The map file referenced by the sourceMappingURL comment of the file is read,
every existing source map comment is removed and a base64 encoded inline
comment is appended to the end of the file.`,
		Example: exampleText,
		Args:    exactArgsWithMsg(1, "arg should either be \"-\", if reading from stdin, or a path to a generated file"),
		RunE:    c.run,
	}

	inlineCmd.Flags().SortFlags = false
	inlineCmd.Flags().AddFlagSet(configFlagSet())
	inlineCmd.Flags().BoolVarP(&c.inPlace, "write", "w", false, "write the result to the file instead of stdout")

	return inlineCmd
}
