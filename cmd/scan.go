package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/sourcemap"
)

const (
	scanLineWidth = 5
	scanKindWidth = 6
)

type cmdScan struct {
	gs *state.GlobalState
}

// findComments returns the comments of the given kind in src, ordered by
// their position. The map file grammar also accepts data URIs, so with
// kindAuto a comment that is matched by both grammars is only reported as
// inline.
func findComments(src, kind string) []sourcemap.Match {
	var inline, matches []sourcemap.Match
	if kind != kindFile {
		inline = sourcemap.Inline().FindAll(src)
		matches = append(matches, inline...)
	}
	if kind != kindInline {
	outer:
		for _, m := range sourcemap.MapFile().FindAll(src) {
			for _, im := range inline {
				if m.Start < im.End && im.Start < m.End {
					continue outer
				}
			}
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

func (c *cmdScan) run(cmd *cobra.Command, args []string) error {
	conf, err := getConsolidatedConfig(c.gs, cmd.Flags())
	if err != nil {
		return err
	}

	sf, err := readSource(c.gs, args)
	if err != nil {
		return err
	}

	matches := findComments(sf.Data, conf.Kind.String)
	if len(matches) == 0 {
		return errNoSourceMap
	}

	cons := c.gs.Console
	reserved := scanLineWidth + scanKindWidth + 2
	var out strings.Builder
	for _, m := range matches {
		payload := cons.Truncate(m.Payload, reserved)
		kind := fmt.Sprintf("%-*s", scanKindWidth, m.Kind)
		if m.Kind == sourcemap.KindInline {
			payload, kind = cons.Inline(payload), cons.Inline(kind)
		} else {
			payload, kind = cons.File(payload), cons.File(kind)
		}
		fmt.Fprintf(&out, "%s %s %s\n", cons.Faint(fmt.Sprintf("%*d", scanLineWidth, m.Line)), kind, payload)
	}

	return cons.Print(out.String())
}

func getCmdScan(gs *state.GlobalState) *cobra.Command {
	c := &cmdScan{gs: gs}

	exampleText := getExampleText(gs, `
  # List every source map comment of a bundle
  {{.}} scan dist/bundle.js

  # Only list map file references
  {{.}} scan --kind file dist/bundle.js`[1:])

	scanCmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "List the source map comments of a generated file",
		Long: `List the source map comments of a generated file.

Every comment is printed on its own line with the line number it's on, its kind
("inline" or "file") and its data URI or map file path.`,
		Example: exampleText,
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.run,
	}

	scanCmd.Flags().SortFlags = false
	scanCmd.Flags().AddFlagSet(configFlagSet())

	return scanCmd
}
