package audiotag_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/audiotag"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want audiotag.Format
	}{
		{"flac", flacFile(), audiotag.FormatFLAC},
		{"mp3 with tag", mp3File("x"), audiotag.FormatMP3},
		{"bare mpeg frame", []byte{0xFF, 0xFB, 0x90, 0x00, 0x00}, audiotag.FormatMP3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := audiotag.DetectFormat(bytes.NewReader(tt.data), int64(len(tt.data)), "file")
			if err != nil {
				t.Fatalf("DetectFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFormat_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too small", []byte{0x00, 0x00}},
		{"ogg", []byte("OggS\x00\x02")},
		{"riff", []byte("RIFF\x00\x00\x00\x00WAVE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := audiotag.DetectFormat(bytes.NewReader(tt.data), int64(len(tt.data)), "file")
			var unsupported *audiotag.UnsupportedFormatError
			if !errors.As(err, &unsupported) {
				t.Errorf("error = %v, want UnsupportedFormatError", err)
			}
			if format != audiotag.FormatUnknown {
				t.Errorf("format = %v, want unknown", format)
			}
		})
	}
}
