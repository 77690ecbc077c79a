package errext

import "errors"

// HasHint is implemented by errors that carry a suggestion for the user, like
// the flag to pass or how to quote a value.
type HasHint interface {
	error
	Hint() string
}

// WithHint attaches hint to err. A nil err stays nil and an empty hint leaves
// err untouched. Hints further down the chain are kept: the result reads
// "outer hint (inner hint)".
func WithHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintError{err: err, hint: hint}
}

type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }

func (e *hintError) Unwrap() error { return e.err }

func (e *hintError) Hint() string {
	var inner HasHint
	if !errors.As(e.err, &inner) {
		return e.hint
	}
	return e.hint + " (" + inner.Hint() + ")"
}

var _ HasHint = (*hintError)(nil)
