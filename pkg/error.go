package pkg

// Sentinel errors for the host side of javpy (CLI, REPL, configuration).
// These errors can be tested using errors.Is for reliable error checking.
// Errors raised while lexing, parsing, or evaluating a program live in
// package lang.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrInvalidExtension is returned when a source file does not carry the
// javpy file extension.
//
// This error should be wrapped with the offending path.
var ErrInvalidExtension = MakeErrorf("invalid file extension")

// ErrFileNotFound is returned when a source file does not exist.
//
// This error should be wrapped with the missing path.
var ErrFileNotFound = MakeErrorf("file not found")

// ErrReadSource is returned when reading a source file or stdin fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadSource = MakeErrorf("failed to read source")

// ErrNoExecutableCode is returned when a source compiles to zero statements.
var ErrNoExecutableCode = MakeErrorf("no executable code found")

// ErrInvalidFormat is returned when an invalid output format is specified.
//
// This error should be wrapped with additional context that specifies the
// invalid format along with a list of valid formats.
var ErrInvalidFormat = MakeErrorf("invalid format")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Is reports whether target is an Error whose innermost error is also the
// innermost error of e. This lets a sentinel match every chain built from it
// with [Error.Wrap] or [Error.Wrapf].
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(e) == 0 {
		return false
	}

	return e[0] == t[0]
}

// Wrap appends one or more errors to the receiver and returns the result.
// The receiver is never modified.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
// The receiver is never modified.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
