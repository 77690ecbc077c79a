// srcmap is a command line tool for the sourceMappingURL comments of
// generated JavaScript and CSS files.
package main

import (
	"context"

	"go.k6.io/srcmap/cmd"
	"go.k6.io/srcmap/cmd/state"
)

func main() {
	cmd.ExecuteWithGlobalState(state.NewGlobalState(context.Background()))
}
