// Package exitcodes contains the constants representing possible srcmap exit
// error codes.
package exitcodes

// ExitCode is just a type representing a process exit code for srcmap
type ExitCode uint8

// list of exit codes used by srcmap
const (
	GenericError      ExitCode = 1
	InvalidConfig     ExitCode = 104
	NoSourceMap       ExitCode = 110
	DecodeFailed      ExitCode = 111
	MapFileUnreadable ExitCode = 112
	PropertyExists    ExitCode = 113
	GoPanic           ExitCode = 115
)
