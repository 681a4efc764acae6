package mp3

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/simonhull/audiotag/internal/types"
)

func synchsafe(n int) []byte {
	return []byte{byte(n>>21) & 0x7F, byte(n>>14) & 0x7F, byte(n>>7) & 0x7F, byte(n) & 0x7F}
}

// tag builds an ID3v2 tag: 10-byte header followed by body.
func tag(version, flags byte, body []byte) []byte {
	out := []byte{'I', 'D', '3', version, 0x00, flags}
	out = append(out, synchsafe(len(body))...)
	return append(out, body...)
}

// frame23 builds an ID3v2.3 frame (plain 32-bit size, no flags).
func frame23(id string, payload []byte) []byte {
	n := len(payload)
	out := append([]byte(id), byte(n>>24), byte(n>>16), byte(n>>8), byte(n), 0x00, 0x00)
	return append(out, payload...)
}

// frame24 builds an ID3v2.4 frame (synchsafe size).
func frame24(id string, payload []byte) []byte {
	out := append([]byte(id), synchsafe(len(payload))...)
	out = append(out, 0x00, 0x00)
	return append(out, payload...)
}

// frame22 builds an ID3v2.2 frame (3-byte ID and size).
func frame22(id string, payload []byte) []byte {
	n := len(payload)
	out := append([]byte(id), byte(n>>16), byte(n>>8), byte(n))
	return append(out, payload...)
}

func text(s string) []byte {
	return append([]byte{0x00}, s...)
}

func comment(s string) []byte {
	out := []byte{0x00, 'e', 'n', 'g', 0x00}
	return append(out, s...)
}

// mpegFrame is an MPEG-1 Layer III, 128 kbps, 44.1 kHz, stereo frame header
// followed by some audio bytes.
func mpegFrame() []byte {
	out := []byte{0xFF, 0xFB, 0x90, 0x00}
	return append(out, make([]byte, 400)...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func parse(t *testing.T, data []byte) *types.File {
	t.Helper()
	file, err := (&parser{}).Parse(context.Background(), bytes.NewReader(data), int64(len(data)), "test.mp3")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return file
}

func TestParse_ID3v23(t *testing.T) {
	body := concat(
		frame23("TIT2", text("Test Title")),
		frame23("TPE1", text("Test Artist")),
		frame23("TALB", text("Test Album")),
		frame23("TRCK", text("3/12")),
		frame23("TCON", text("(17)")),
		frame23("TYER", text("1999")),
		frame23("COMM", comment("Nice")),
		frame23("TXXX", text("desc\x00value")),
		make([]byte, 16),
	)
	file := parse(t, concat(tag(3, 0, body), mpegFrame()))

	tags := file.Tags
	if tags.Title != "Test Title" || tags.Artist != "Test Artist" || tags.Album != "Test Album" {
		t.Errorf("tags = %q/%q/%q", tags.Title, tags.Artist, tags.Album)
	}
	if tags.TrackNumber != 3 || tags.TrackTotal != 12 {
		t.Errorf("track = %d/%d, want 3/12", tags.TrackNumber, tags.TrackTotal)
	}
	if len(tags.Genres) != 1 || tags.Genres[0] != "Rock" {
		t.Errorf("Genres = %q, want [Rock]", tags.Genres)
	}
	if len(tags.Comments) != 1 || tags.Comments[0] != "Nice" {
		t.Errorf("Comments = %q", tags.Comments)
	}
	if tags.Year != 1999 {
		t.Errorf("Year = %d", tags.Year)
	}
	if got := tags.GetFirst("TIT2"); got != "Test Title" {
		t.Errorf("raw TIT2 = %q", got)
	}
	if got := tags.Get("TXXX"); len(got) != 0 {
		t.Errorf("TXXX should not be decoded, got %q", got)
	}
	if len(file.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", file.Warnings)
	}

	if file.Audio.Codec != "MP3" || file.Audio.SampleRate != 44100 || file.Audio.Channels != 2 {
		t.Errorf("Audio = %+v", file.Audio)
	}
	if file.Audio.Bitrate != 128000 || file.Audio.VBR {
		t.Errorf("Audio = %+v", file.Audio)
	}
}

func TestParse_ID3v22(t *testing.T) {
	body := concat(
		frame22("TT2", text("Old Title")),
		frame22("TP1", text("Old Artist")),
		frame22("TCO", text("(0)")),
		frame22("CRM", []byte("encrypted")),
		frame22("PIC", []byte{0x00, 'J', 'P', 'G', 0x03, 0x00}),
	)
	file := parse(t, concat(tag(2, 0, body), mpegFrame()))

	if file.Tags.Title != "Old Title" || file.Tags.Artist != "Old Artist" {
		t.Errorf("tags = %q/%q", file.Tags.Title, file.Tags.Artist)
	}
	if len(file.Tags.Genres) != 1 || file.Tags.Genres[0] != "Blues" {
		t.Errorf("Genres = %q, want [Blues]", file.Tags.Genres)
	}
	if got := file.Tags.GetFirst("TIT2"); got != "Old Title" {
		t.Errorf("raw TIT2 = %q, v2.2 IDs should be translated", got)
	}
}

func TestParse_ID3v22Compressed(t *testing.T) {
	file := parse(t, concat(tag(2, 0x40, frame22("TT2", text("x"))), mpegFrame()))

	if file.Tags.Title != "" {
		t.Errorf("Title = %q, compressed tag should be skipped", file.Tags.Title)
	}
	if len(file.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", file.Warnings)
	}
	if file.Audio.Codec != "MP3" {
		t.Error("audio frame after skipped tag not found")
	}
}

func TestParse_ID3v24(t *testing.T) {
	long := strings.Repeat("a", 200) // synchsafe size differs from plain
	body := concat(
		frame24("TIT2", text(long)),
		frame24("TDRC", text("2021-05-01")),
		frame24("TPE1", text("One\x00Two")),
	)
	file := parse(t, concat(tag(4, 0, body), mpegFrame()))

	if file.Tags.Title != long {
		t.Errorf("Title length = %d, want %d", len(file.Tags.Title), len(long))
	}
	if file.Tags.Date != "2021-05-01" || file.Tags.Year != 2021 {
		t.Errorf("Date/Year = %q/%d", file.Tags.Date, file.Tags.Year)
	}
	if file.Tags.Artist != "One" || len(file.Tags.Artists) != 2 {
		t.Errorf("Artist = %q, Artists = %q", file.Tags.Artist, file.Tags.Artists)
	}
}

func TestParse_TagUnsync(t *testing.T) {
	// TIT2 "\xFFA" (3 bytes after resync) stored with an inserted 0x00.
	body := []byte{'T', 'I', 'T', '2', 0, 0, 0, 3, 0, 0, 0x00, 0xFF, 0x00, 'A'}
	file := parse(t, concat(tag(3, 0x80, body), mpegFrame()))

	if file.Tags.Title != "ÿA" {
		t.Errorf("Title = %q, want %q", file.Tags.Title, "ÿA")
	}
}

func TestParse_Warnings(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"bad genre", frame23("TCON", text("(999)"))},
		{"bad track", frame23("TRCK", text("x"))},
		{"truncated frame", concat(frame23("TIT2", text("ok")), []byte("TAL"))},
		{"oversized frame", []byte{'T', 'I', 'T', '2', 0, 0, 1, 0, 0, 0, 0x00, 'x'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := parse(t, concat(tag(3, 0, tt.body), mpegFrame()))
			if len(file.Warnings) == 0 {
				t.Fatal("expected a warning")
			}
			for _, w := range file.Warnings {
				if w.Stage != "metadata" {
					t.Errorf("warning stage = %q, want metadata", w.Stage)
				}
			}
		})
	}
}

func TestParse_UnsupportedVersion(t *testing.T) {
	file := parse(t, concat(tag(5, 0, frame23("TIT2", text("x"))), mpegFrame()))

	if file.Tags.Title != "" {
		t.Errorf("Title = %q", file.Tags.Title)
	}
	if len(file.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", file.Warnings)
	}
	if file.Audio.Codec != "MP3" {
		t.Error("audio frame after unsupported tag not found")
	}
}

func TestParse_NoTag(t *testing.T) {
	file := parse(t, mpegFrame())

	if !file.Tags.IsEmpty() {
		t.Errorf("expected empty tags, got %v", file.Tags.Keys())
	}
	if file.Audio.Codec != "MP3" {
		t.Errorf("Codec = %q", file.Audio.Codec)
	}
}

func TestParse_XingVBR(t *testing.T) {
	xing := concat(
		[]byte{0xFF, 0xFB, 0x90, 0x00},
		make([]byte, 32), // side info
		[]byte("Xing"),
		[]byte{0, 0, 0, 1},    // frames field present
		[]byte{0, 0, 0, 0x64}, // 100 frames
		make([]byte, 200),
	)
	file := parse(t, xing)

	if !file.Audio.VBR {
		t.Fatal("VBR = false, want true")
	}
	secs := float64(100*1152) / 44100
	want := time.Duration(secs * float64(time.Second))
	if file.Audio.Duration != want {
		t.Errorf("Duration = %v, want %v", file.Audio.Duration, want)
	}
	if file.Audio.TotalSamples != 115200 {
		t.Errorf("TotalSamples = %d", file.Audio.TotalSamples)
	}
}

func TestParse_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mp3")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	file, err := (&parser{}).Parse(context.Background(), f, 0, path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(file.Warnings) == 0 {
		t.Error("expected warnings for empty file")
	}
}

func TestDecodeFrameHeader(t *testing.T) {
	tests := []struct {
		name   string
		header uint32
		want   frameHeader
		ok     bool
	}{
		{"mpeg1 128k stereo", 0xFFFB9000, frameHeader{mpeg1: true, bitrate: 128000, sampleRate: 44100, channels: 2}, true},
		{"mpeg1 mono", 0xFFFB90C0, frameHeader{mpeg1: true, bitrate: 128000, sampleRate: 44100, channels: 1}, true},
		{"mpeg2 64k 22.05k", 0xFFF38000, frameHeader{bitrate: 64000, sampleRate: 22050, channels: 2}, true},
		{"no sync", 0x7FFB9000, frameHeader{}, false},
		{"layer II", 0xFFFD9000, frameHeader{}, false},
		{"free bitrate", 0xFFFB0000, frameHeader{}, false},
		{"reserved rate", 0xFFFB9C00, frameHeader{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeFrameHeader(tt.header)
			if ok != tt.ok || got != tt.want {
				t.Errorf("decodeFrameHeader(%#x) = %+v, %v; want %+v, %v", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	body := concat(frame23("TIT2", text("Benchmark")), frame23("TPE1", text("Artist")))
	data := concat(tag(3, 0, body), mpegFrame())
	r := bytes.NewReader(data)
	p := &parser{}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.Parse(context.Background(), r, int64(len(data)), "bench.mp3"); err != nil {
			b.Fatal(err)
		}
	}
}
