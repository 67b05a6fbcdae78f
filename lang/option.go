package lang

import (
	"io"
	"os"

	"github.com/ardnew/javpy/log"
)

// DefaultStrict is the default parser mode. In strict mode a token that
// cannot begin a statement is an error; otherwise it is logged and skipped.
const DefaultStrict = true

// Option configures tokenizing, parsing or evaluation.
type Option func(*options)

type options struct {
	logger log.Logger
	output io.Writer
	strict bool
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrict selects strict (true) or permissive (false) parsing.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithOutput sets the writer that receives print output. A nil writer
// discards output. The default is [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w == nil {
			w = io.Discard
		}

		o.output = w
	}
}

func makeOptions(opts ...Option) options {
	o := options{
		output: os.Stdout,
		strict: DefaultStrict,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
