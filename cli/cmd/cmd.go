package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer kong was configured with, or [os.Stdout].
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

type stdinKey struct{}

// WithStdin returns a new context.Context whose "-" source reads from r
// instead of [os.Stdin].
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// resolveSources validates the given source paths and removes duplicates,
// preserving the order of first occurrence.
//
// Every path other than "-" must name an existing file with the javpy
// extension. Paths are compared by device and inode, so a file reached
// through a symlink or a relative path is only run once. All occurrences of
// "-" collapse into one.
func resolveSources(sources []string) ([]string, error) {
	seen := make(map[fileKey]struct{}, len(sources))
	unique := make([]string, 0, len(sources))
	stdin := false

	for _, src := range sources {
		if src == stdinSource {
			if !stdin {
				unique = append(unique, src)
				stdin = true
			}

			continue
		}

		if filepath.Ext(src) != pkg.Extension {
			return nil, pkg.ErrInvalidExtension.Wrapf("%s", src)
		}

		info, err := os.Stat(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, pkg.ErrFileNotFound.Wrapf("%s", src)
			}

			return nil, pkg.ErrReadSource.Wrap(err)
		}

		if key, ok := makeFileKey(info); ok {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		unique = append(unique, src)
	}

	return unique, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// openSource opens the named source, where "-" is stdin.
func openSource(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == stdinSource {
		return io.NopCloser(stdinFrom(ctx)), nil
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, pkg.ErrReadSource.Wrap(err)
	}

	return file, nil
}

// compileSource reads and compiles the named source.
func compileSource(
	ctx context.Context,
	name string,
	opts ...lang.Option,
) (*lang.Program, error) {
	r, err := openSource(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return lang.CompileReader(ctx, r, opts...)
}

// readSource returns the full text of the named source.
func readSource(ctx context.Context, name string) (string, error) {
	r, err := openSource(ctx, name)
	if err != nil {
		return "", err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return "", pkg.ErrReadSource.Wrap(err)
	}

	return string(b), nil
}

// sourceName returns a display name for a source.
func sourceName(name string) string {
	if name == stdinSource {
		return "<stdin>"
	}

	return name
}
