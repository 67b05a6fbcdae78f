package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// programCache maps a source+options hash to its *cacheEntry.
//
//nolint:gochecknoglobals
var programCache sync.Map

type cacheEntry struct {
	once   sync.Once
	source string
	prog   *Program
	err    error
}

// cacheKey hashes source together with every option that affects
// compilation.
func cacheKey(source string, o options) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(strconv.FormatBool(o.strict))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(source)

	return h.Sum64()
}

// Compile tokenizes and parses source. Results (including errors) are
// memoized per source and parse mode, so compiling the same text again is
// cheap.
func Compile(ctx context.Context, source string, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)
	key := cacheKey(source, o)

	value, hit := programCache.LoadOrStore(key, &cacheEntry{source: source})

	entry, ok := value.(*cacheEntry)
	if !ok || entry.source != source {
		// Hash collision; leave the existing entry alone.
		o.logger.DebugContext(ctx, "cache bypass",
			slog.String("key", strconv.FormatUint(key, 16)))

		return compile(ctx, source, opts...)
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", strconv.FormatUint(key, 16)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.prog, entry.err = compile(ctx, source, opts...)
		if entry.err == nil {
			o.logger.TraceContext(ctx, "compiled", kindCounts(entry.prog.tokens))
		}
	})

	return entry.prog, entry.err
}

// CompileReader reads all of r and compiles it with [Compile].
func CompileReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	// Read-ahead fetches the next chunk concurrently while the previous one
	// is copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)))

	return Compile(ctx, string(data), opts...)
}

// ClearCache discards all memoized programs.
func ClearCache() {
	programCache.Clear()
}
