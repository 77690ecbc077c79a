// Package tests contains integration tests for the srcmap command line tool.
package tests

import (
	"fmt"
	"os"
	"testing"

	"go.uber.org/goleak"
)

// Main is a TestMain function that can be imported by other test packages
// that want to check for leaked goroutines after all tests have run.
func Main(m *testing.M) {
	exitCode := 1 // error out by default
	defer func() {
		os.Exit(exitCode)
	}()

	defer func() {
		if err := goleak.Find(); err != nil {
			fmt.Println(err) //nolint:forbidigo
			exitCode = 3
		}
	}()

	exitCode = m.Run()
}
