package audiotag

import (
	"runtime"

	"github.com/rs/zerolog"
)

// Option configures behavior when opening audio files.
//
// Example:
//
//	file, err := audiotag.Open("song.flac",
//	    audiotag.WithStrictParsing(),
//	    audiotag.WithLogger(logger),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
	logger         zerolog.Logger
	concurrency    int // OpenMany worker limit
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger:      zerolog.Nop(),
		concurrency: runtime.NumCPU(),
	}
}

func applyOptions(opts []Option) *openOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default a file with undecodable frames, or a container that cannot be
// read at all, still opens and reports the problems in File.Warnings. With
// strict parsing the first such problem is returned as an error.
//
// Example:
//
//	file, err := audiotag.Open("song.mp3", audiotag.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Example:
//
//	file, err := audiotag.Open("song.flac", audiotag.WithIgnoreWarnings())
//	// file.Warnings will always be empty
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger used while parsing. Decoders log skipped frames
// and blocks at debug level; fallbacks to a partial File log at warn level.
//
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// WithConcurrency limits how many files OpenMany parses at once.
// Values below 1 are ignored. The default is runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *openOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
