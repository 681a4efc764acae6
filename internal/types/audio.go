package types

import (
	"fmt"
	"strings"
	"time"
)

// AudioInfo represents technical audio properties.
type AudioInfo struct {
	Codec        string
	Container    string
	Duration     time.Duration
	SampleRate   int
	BitDepth     int
	Channels     int
	Bitrate      int // bits per second
	TotalSamples uint64
	Lossless     bool
	VBR          bool
}

// String returns a human-readable representation of the audio info.
// Example output: "FLAC 44.1kHz 16-bit stereo lossless".
func (a AudioInfo) String() string {
	parts := []string{a.Codec}

	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}
	if a.BitDepth > 0 {
		parts = append(parts, fmt.Sprintf("%d-bit", a.BitDepth))
	}
	if ch := channelDescription(a.Channels); ch != "" {
		parts = append(parts, ch)
	}

	switch {
	case a.Lossless:
		parts = append(parts, "lossless")
	case a.Bitrate > 0:
		q := fmt.Sprintf("%dkbps", a.Bitrate/1000)
		if a.VBR {
			q += " VBR"
		}
		parts = append(parts, q)
	}

	return strings.Join(slicesCompact(parts), " ")
}

func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

func slicesCompact(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
