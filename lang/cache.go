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

// programCache stores parse results keyed by the xxh3 hash of the source.
var programCache sync.Map

// entry holds the result of parsing one source.
type entry struct {
	once sync.Once
	prog *Program
	err  error
}

// ParseReader parses a program read from r.
//
// Unless disabled with [WithCache], the result is cached by the content of
// the source, so parsing identical input again returns the same *Program.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	// Read ahead asynchronously while the previous block is being copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("cache", o.cache))

	if !o.cache {
		return parse(ctx, string(data), o)
	}

	return parseCached(ctx, string(data), o)
}

func parseCached(ctx context.Context, src string, o options) (*Program, error) {
	hash := xxh3.HashString(src)

	value, hit := programCache.LoadOrStore(hash, new(entry))

	ent, _ := value.(*entry)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit))

	ent.once.Do(func() {
		ent.prog, ent.err = parse(ctx, src, o)
	})

	return ent.prog, ent.err
}

// ClearCache removes all cached parse results.
func ClearCache() {
	programCache.Clear()
}
