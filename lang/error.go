package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Phase identifies the pipeline stage that produced an [Error].
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseLex
	PhaseParse
	PhaseRuntime
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseRuntime:
		return "runtime"
	default:
		return ""
	}
}

// Predefined errors (sentinel values). Errors returned by this package are
// derived from one of these and match it with [errors.Is].
var (
	ErrUnknownSymbol        = newError(PhaseLex, "unknown symbol")
	ErrNestedComment        = newError(PhaseLex, "nested comment start")
	ErrUnexpectedCommentEnd = newError(PhaseLex, "unexpected comment end")
	ErrUnclosedComment      = newError(PhaseLex, "unclosed comment")

	ErrUnexpectedToken    = newError(PhaseParse, "unexpected token")
	ErrUnexpectedEOF      = newError(PhaseParse, "unexpected end of input")
	ErrExpectedColon      = newError(PhaseParse, "expected ':' after variable name")
	ErrExpectedIdentifier = newError(PhaseParse, "expected identifier")
	ErrMissingParen       = newError(PhaseParse, "missing closing parenthesis")
	ErrMissingValue       = newError(PhaseParse, "missing value after print")

	ErrUndefinedVariable  = newError(PhaseRuntime, "undefined variable")
	ErrConstantModified   = newError(PhaseRuntime, "cannot modify constant")
	ErrDivisionByZero     = newError(PhaseRuntime, "division by zero")
	ErrUnsupportedOperand = newError(PhaseRuntime, "unsupported operand type(s)")
	ErrNotReal            = newError(PhaseRuntime, "result is not a real number")
	ErrOverflow           = newError(PhaseRuntime, "numeric result out of range")

	ErrReadInput   = newError(PhaseNone, "failed to read input")
	ErrWriteOutput = newError(PhaseNone, "failed to write output")
)

// Error is a located, structured error. It implements both error and
// slog.LogValuer.
//
// Errors are immutable; [Error.At], [Error.Detail], [Error.Wrap] and
// [Error.With] return modified copies that still match their sentinel.
type Error struct {
	Phase Phase
	Pos   Pos
	// Line is the text of the source line containing Pos, when known.
	Line string

	msg    string
	detail string
	base   *Error
	err    error
	attrs  []slog.Attr
}

func newError(phase Phase, msg string) *Error {
	return &Error{Phase: phase, msg: msg}
}

func (e *Error) clone() *Error {
	c := *e
	if c.base == nil {
		c.base = e
	}

	return &c
}

// At returns a copy of the error located at pos.
func (e *Error) At(pos Pos) *Error {
	c := e.clone()
	c.Pos = pos

	return c
}

// Detail returns a copy of the error with a formatted qualifier appended to
// its message.
func (e *Error) Detail(format string, args ...any) *Error {
	c := e.clone()
	c.detail = fmt.Sprintf(format, args...)

	return c
}

// Wrap returns a copy of the error with err as its cause.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With returns a copy of the error with additional logging attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...)

	return c
}

// withSource fills in the offending source line if the error is located and
// does not have one yet.
func (e *Error) withSource(source string) *Error {
	if e.Line != "" || !e.Pos.IsValid() {
		return e
	}

	c := e.clone()
	c.Line = sourceLine(source, e.Pos.Line)

	return c
}

// Message returns the error description without phase or location.
func (e *Error) Message() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.detail != "" {
			msg += " " + e.detail
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Error renders "<phase> error at line L, column C: <message>", followed by
// the offending source line and a caret when the line is known.
func (e *Error) Error() string {
	var sb strings.Builder

	if e.Phase != PhaseNone {
		sb.WriteString(e.Phase.String())
		sb.WriteString(" error")

		if e.Pos.IsValid() {
			fmt.Fprintf(&sb, " at line %d, column %d", e.Pos.Line, e.Pos.Column)
		}

		sb.WriteString(": ")
	}

	sb.WriteString(e.Message())

	if e.Line != "" && e.Pos.IsValid() {
		sb.WriteByte('\n')
		sb.WriteString(e.Snippet())
	}

	return sb.String()
}

// Snippet renders the offending source line with a caret under the error
// column:
//
//	3 | print 1 / 0
//	  |         ^
func (e *Error) Snippet() string {
	if e.Line == "" || !e.Pos.IsValid() {
		return ""
	}

	num := strconv.Itoa(e.Pos.Line)
	gutter := strings.Repeat(" ", len(num))

	var pad strings.Builder

	col := 1
	for _, r := range e.Line {
		if col >= e.Pos.Column {
			break
		}

		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}

		col++
	}

	return "  " + num + " | " + e.Line + "\n  " + gutter + " | " + pad.String() + "^"
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel (or a copy of the sentinel) this
// error was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil {
		return false
	}

	return e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)

	if e.Phase != PhaseNone {
		attrs = append(attrs, slog.String("phase", e.Phase.String()))
	}

	attrs = append(attrs, slog.String("error", e.msg))

	if e.detail != "" {
		attrs = append(attrs, slog.String("detail", e.detail))
	}

	if e.Pos.IsValid() {
		attrs = append(attrs, posAttr(e.Pos))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// located attaches pos to err if it is an [*Error] without a
// position of its own.
func located(err error, pos Pos) error {
	var e *Error
	if errors.As(err, &e) && !e.Pos.IsValid() {
		return e.At(pos)
	}

	return err
}

// withSource attaches the offending source line to err if it is an [*Error].
func withSource(err error, source string) error {
	var e *Error
	if errors.As(err, &e) {
		return e.withSource(source)
	}

	return err
}

// sourceLine returns the 1-based line n of source without its terminator.
func sourceLine(source string, n int) string {
	for i := 1; i < n; i++ {
		j := strings.IndexByte(source, '\n')
		if j < 0 {
			return ""
		}

		source = source[j+1:]
	}

	if j := strings.IndexByte(source, '\n'); j >= 0 {
		source = source[:j]
	}

	return strings.TrimRight(source, "\r")
}
