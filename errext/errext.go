// Package errext contains extensions for normal Go errors that are used by
// srcmap: user facing hints and process exit codes.
package errext
