package lib

import (
	"errors"
	"fmt"
	"io"
	"os"
)

type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }

// WithHint attaches a follow-up hint that Exit prints below the error.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hintError{err: err, hint: hint}
}

// Hint returns the hint attached anywhere in err's chain.
func Hint(err error) (string, bool) {
	var he *hintError
	if errors.As(err, &he) {
		return he.hint, true
	}
	return "", false
}

// Report writes err and its hint, if any, the way Exit does.
func Report(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	if hint, ok := Hint(err); ok {
		fmt.Fprintln(w, "\nhint:", hint)
	}
}

// Exit prints the error and exits the program with code 1
func Exit(err error) {
	Report(os.Stderr, err)
	os.Exit(1)
}
