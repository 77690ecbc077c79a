package cmd

import (
	"fmt"
	"strings"

	"go.k6.io/srcmap/cmd/state"
	"go.k6.io/srcmap/sourcemap"
)

// loadSourceMap finds the source map of sf according to kind. With kindAuto
// an inline comment is preferred over a map file reference. It returns
// errNoSourceMap if there is no comment of the requested kind.
func loadSourceMap(gs *state.GlobalState, sf sourceFile, kind string) (*sourcemap.Converter, error) {
	if kind != kindFile {
		conv, err := sourcemap.FromSource(sf.Data)
		if err != nil {
			return nil, classifyError(err)
		}
		if conv != nil {
			gs.Logger.WithField("file", sf.Name).Debug("Found an inline source map")
			return conv, nil
		}
		if kind == kindInline {
			return nil, errNoSourceMap
		}
	}

	conv, err := sourcemap.NewLoader(gs.FS, gs.Logger).FromMapFileSource(sf.Data, sf.Dir)
	if err != nil {
		return nil, classifyError(err)
	}
	if conv == nil {
		return nil, errNoSourceMap
	}
	return conv, nil
}

// printValue prints v as JSON or YAML, depending on the configured format.
// JSON is rendered like the source maps themselves.
func printValue(gs *state.GlobalState, conf Config, v any) error {
	if conf.Format.String == formatYAML {
		return gs.Console.PrintYAML(v)
	}

	out, err := sourcemap.Stringify(v, int(conf.Indent.Int64))
	if err != nil {
		return fmt.Errorf("couldn't serialize the value: %w", err)
	}
	return gs.Console.Print(out + "\n")
}

// printSourceMap prints the whole document held by conv.
func printSourceMap(gs *state.GlobalState, conf Config, conv *sourcemap.Converter) error {
	if conf.Format.String == formatYAML {
		obj, err := conv.ToObject()
		if err != nil {
			return err
		}
		return gs.Console.PrintYAML(obj)
	}

	out, err := conv.ToJSON(int(conf.Indent.Int64))
	if err != nil {
		return err
	}
	return gs.Console.Print(out + "\n")
}

// replaceMatch swaps the comment of m in src for comment, keeping whatever
// whitespace the grammar consumed before the comment marker.
func replaceMatch(src string, m sourcemap.Match, comment string) string {
	lead := strings.IndexByte(m.Text, '/')
	if lead < 0 {
		lead = 0
	}
	return src[:m.Start] + m.Text[:lead] + comment + src[m.End:]
}

// appendComment adds comment on its own line at the end of src.
func appendComment(src, comment string) string {
	src = strings.TrimRight(src, "\n")
	if src != "" {
		src += "\n"
	}
	return src + comment + "\n"
}
