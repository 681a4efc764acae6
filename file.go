package audiotag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	_ "github.com/simonhull/audiotag/internal/flac" // Register FLAC parser
	_ "github.com/simonhull/audiotag/internal/mp3"  // Register MP3 parser
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

// File represents an opened audio file with parsed metadata.
//
// Always call Close() when done to release file resources:
//
//	file, err := audiotag.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File = types.File

// Open opens an audio file and reads its metadata.
//
// Supported formats: FLAC, MP3
//
// If the file is corrupted or has invalid tags, Open may return a partial
// File with warnings instead of an error. Check File.Warnings for details.
//
// Example:
//
//	file, err := audiotag.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//	fmt.Printf("%s - %s\n", file.Tags.Artist, file.Tags.Title)
func Open(path string, opts ...Option) (*File, error) {
	return openPath(context.Background(), path, applyOptions(opts))
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked between parsing stages, so a cancelled context
// stops work on a large file early.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := audiotag.OpenContext(ctx, "song.flac")
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	return openPath(ctx, path, applyOptions(opts))
}

func openPath(ctx context.Context, path string, options *openOptions) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	file, err := openReader(ctx, f, stat.Size(), path, options)
	if err != nil {
		f.Close()
		return nil, err
	}

	file.Reader_ = f
	return file, nil
}

// openReader parses from an io.ReaderAt (internal, for testing)
func openReader(ctx context.Context, r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	log := options.logger.With().Str("path", path).Logger()
	ctx = log.WithContext(ctx)

	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	file, err := parser.Parse(ctx, r, size, path)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case options.strictParsing || !isStructural(err):
		return nil, fmt.Errorf("parse %s: %w", format, err)
	default:
		// The container is unreadable but the format is known: hand back
		// what detection found so callers can still list the file.
		log.Warn().Err(err).Stringer("format", format).Msg("falling back to empty metadata")
		file = &File{}
		file.Warn("open", 0, "%s metadata unreadable: %v", format, err)
	}

	file.Path = path
	file.Format = format
	file.Size = size

	if options.strictParsing && len(file.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", file.Warnings[0])
	}
	if options.ignoreWarnings {
		file.Warnings = nil
	}

	return file, nil
}

// isStructural reports whether err describes an unreadable container rather
// than an I/O failure.
func isStructural(err error) bool {
	var corrupted *CorruptedFileError
	var oob *OutOfBoundsError
	return errors.As(err, &corrupted) || errors.As(err, &oob)
}

// OpenMany opens multiple audio files concurrently.
//
// Files are parsed in parallel using up to WithConcurrency goroutines
// (runtime.NumCPU() by default). Results are returned in the same order as
// the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
// Example:
//
//	files, err := audiotag.OpenMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	options := applyOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(options.concurrency)

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			file, err := openPath(ctx, path, options)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
