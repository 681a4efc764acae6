package flac

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
	"github.com/simonhull/audiotag/internal/vorbis"
)

// parser implements registry.FormatParser for FLAC files
type parser struct{}

// Parse reads STREAMINFO and Vorbis comments from a FLAC file.
//
// A missing marker or STREAMINFO block, and a malformed Vorbis comment block,
// are fatal. A file without Vorbis comments parses with empty tags.
func (p *parser) Parse(ctx context.Context, r io.ReaderAt, size int64, path string) (*types.File, error) {
	log := zerolog.Ctx(ctx).With().Str("path", path).Str("format", "FLAC").Logger()
	sr := binary.NewSafeReader(r, size, path)

	file := &types.File{
		Path:   path,
		Format: types.FormatFLAC,
		Size:   size,
	}

	info, err := ReadStreamInfo(bufio.NewReader(sr.Section(0, size)), size)
	if err != nil {
		return nil, corrupted(path, "read STREAMINFO", err)
	}
	if !info.Valid {
		file.Warn("technical", 4, "STREAMINFO block too short to decode")
	} else {
		applyStreamInfo(file, info)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comments, err := ReadVorbisComment(bufio.NewReader(sr.Section(0, size)))
	switch {
	case errors.Is(err, ErrTagNotFound):
		log.Debug().Msg("no Vorbis comment block")
	case err != nil:
		return nil, corrupted(path, "read VORBIS_COMMENT", err)
	default:
		file.Tags.Set("VENDOR", comments.Vendor)
		for _, entry := range comments.Entries {
			if err := vorbis.ParseComment(entry, file); err != nil {
				file.Warn("metadata", 0, "invalid Vorbis comment: %v", err)
			}
		}
	}

	log.Debug().
		Uint32("sample_rate", info.StandardSampleRate).
		Uint8("channels", info.Channels).
		Int("comments", len(comments.Entries)).
		Msg("parsed FLAC metadata")

	return file, nil
}

// applyStreamInfo copies STREAMINFO fields into the file's AudioInfo. The
// standard sample rate is used so that durations are correct for every
// channel count.
func applyStreamInfo(file *types.File, info StreamInfo) {
	file.Audio.Codec = "FLAC"
	file.Audio.Container = "FLAC"
	file.Audio.Lossless = true
	file.Audio.SampleRate = int(info.StandardSampleRate)
	file.Audio.Channels = int(info.Channels)
	file.Audio.BitDepth = int(info.BitsPerSample)
	file.Audio.TotalSamples = info.TotalSamples

	if info.StandardSampleRate > 0 {
		seconds := float64(info.TotalSamples) / float64(info.StandardSampleRate)
		file.Audio.Duration = time.Duration(seconds * float64(time.Second))
	}
	if file.Audio.Duration > 0 {
		file.Audio.Bitrate = int(float64(file.Size*8) / file.Audio.Duration.Seconds())
	}
}

func corrupted(path, reason string, err error) error {
	return &types.CorruptedFileError{
		Path:   path,
		Reason: reason,
		Err:    err,
	}
}

func init() {
	registry.Register(types.FormatFLAC, &parser{})
}
