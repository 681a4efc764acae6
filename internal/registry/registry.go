// Package registry manages format-specific parsers for audio file types.
package registry

import (
	"context"
	"io"
	"sync"

	"github.com/simonhull/audiotag/internal/types"
)

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse extracts metadata from an audio file. The logger for the call is
	// carried by ctx (see zerolog.Ctx).
	//
	// A returned error means the container structure could not be read.
	// Problems confined to individual tag fields are recorded as warnings on
	// the returned File instead.
	Parse(ctx context.Context, r io.ReaderAt, size int64, path string) (*types.File, error)
}

var (
	mu      sync.RWMutex
	parsers = make(map[types.Format]FormatParser)
)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser FormatParser) {
	mu.Lock()
	defer mu.Unlock()
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) FormatParser {
	mu.RLock()
	defer mu.RUnlock()
	return parsers[format]
}
