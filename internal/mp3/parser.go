// Package mp3 reads ID3v2 tags and MPEG audio parameters from MP3 files.
package mp3

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

// parser implements registry.FormatParser for MP3 files
type parser struct{}

// Parse parses a single MP3 file and extracts metadata
func (p *parser) Parse(ctx context.Context, r io.ReaderAt, size int64, path string) (*types.File, error) {
	sr := binutil.NewSafeReader(r, size, path)
	log := zerolog.Ctx(ctx).With().Str("path", path).Str("format", "MP3").Logger()
	ctx = log.WithContext(ctx)

	file := &types.File{
		Path:   path,
		Format: types.FormatMP3,
		Size:   size,
	}

	// Parse ID3v2 tag (if present)
	audioStart, err := parseID3v2(ctx, r, size, file)
	if err != nil {
		file.Warn("metadata", 0, "ID3v2 parsing failed: %v", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Parse MP3 frame headers for technical info (bitrate, duration, etc.)
	if err := parseTechnicalInfo(sr, audioStart, file); err != nil {
		file.Warn("technical", audioStart, "failed to parse MP3 technical info: %v", err)
	}

	return file, nil
}

func init() {
	registry.Register(types.FormatMP3, &parser{})
}
