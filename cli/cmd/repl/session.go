package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
)

// session holds the state shared by every line entered in one REPL run.
type session struct {
	env    *lang.Environment
	logger log.Logger
	opts   []lang.Option
	lines  int
}

func newSession(logger log.Logger, opts ...lang.Option) *session {
	return &session{
		env:    lang.NewEnvironment(),
		logger: logger,
		opts:   append([]lang.Option{lang.WithLogger(logger)}, opts...),
	}
}

// eval runs source against the session environment and returns whatever it
// printed. Output written before a runtime error is returned along with the
// error, and bindings made before the error are kept.
func (s *session) eval(ctx context.Context, source string) (string, error) {
	var out bytes.Buffer

	s.lines++

	err := lang.Exec(ctx, source, s.env, s.with(lang.WithOutput(&out))...)

	s.logger.TraceContext(ctx, "repl eval",
		slog.Int("line", s.lines),
		slog.Int("output_bytes", out.Len()),
		slog.Bool("ok", err == nil),
	)

	return out.String(), err
}

// run executes an already compiled program against the session.
func (s *session) run(ctx context.Context, prog *lang.Program) (string, error) {
	var out bytes.Buffer

	err := prog.Run(ctx, s.env, s.with(lang.WithOutput(&out))...)

	return out.String(), err
}

// with returns the session options followed by opts.
func (s *session) with(opts ...lang.Option) []lang.Option {
	return append(s.opts[:len(s.opts):len(s.opts)], opts...)
}

// reset discards every binding, constants included.
func (s *session) reset() {
	s.env = lang.NewEnvironment()
	s.lines = 0
}

// names returns the bound names in sorted order.
func (s *session) names() []string { return s.env.Names() }

// describe renders a single binding as "name = value (type)", with constants
// marked, or "" if name is unbound.
func (s *session) describe(name string) string {
	v, ok := s.env.Lookup(name)
	if !ok {
		return ""
	}

	kind := v.Type()
	if s.env.IsConst(name) {
		kind = "const " + kind
	}

	return fmt.Sprintf("%s = %s (%s)", name, v, kind)
}

// vars lists every binding, one per line.
func (s *session) vars() string {
	if s.env.Len() == 0 {
		return "  (no bindings)"
	}

	var b strings.Builder

	for _, name := range s.env.Names() {
		b.WriteString("  ")
		b.WriteString(s.describe(name))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}
