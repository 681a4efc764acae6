package audiotag

import (
	"io"

	"github.com/simonhull/audiotag/internal/types"
)

// Format identifies an audio container.
type Format = types.Format

// Supported formats.
const (
	FormatUnknown = types.FormatUnknown
	FormatFLAC    = types.FormatFLAC
	FormatMP3     = types.FormatMP3
)

// DetectFormat determines the audio file format by examining magic bytes.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
