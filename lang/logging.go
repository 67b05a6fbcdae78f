package lang

import (
	"log/slog"
	"maps"
	"slices"
)

func posAttr(p Pos) slog.Attr {
	return slog.Group("pos",
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}

// kindCounts summarizes a token stream for logging.
func kindCounts(tokens []Token) slog.Attr {
	count := make(map[Kind]int)
	for _, tok := range tokens {
		count[tok.Kind]++
	}

	attrs := make([]any, 0, len(count))
	for _, k := range slices.Sorted(maps.Keys(count)) {
		attrs = append(attrs, slog.Int(k.String(), count[k]))
	}

	return slog.Group("kinds", attrs...)
}
