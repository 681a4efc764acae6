package audiotag_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// flacFile builds a FLAC stream: STREAMINFO (44.1 kHz, stereo, 16 bit,
// one second) followed by a Vorbis comment block holding comments.
func flacFile(comments ...string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("fLaC")

	buf.Write([]byte{0x00, 0x00, 0x00, 0x22})
	info := make([]byte, 34)
	packed := uint64(44100)<<44 | uint64(1)<<41 | uint64(15)<<36 | uint64(44100)
	binary.BigEndian.PutUint64(info[10:], packed)
	buf.Write(info)

	body := &bytes.Buffer{}
	vendor := "audiotag"
	binary.Write(body, binary.LittleEndian, uint32(len(vendor)))
	body.WriteString(vendor)
	binary.Write(body, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(body, binary.LittleEndian, uint32(len(c)))
		body.WriteString(c)
	}
	n := body.Len()
	buf.Write([]byte{0x84, byte(n >> 16), byte(n >> 8), byte(n)})
	buf.Write(body.Bytes())

	return buf.Bytes()
}

// mp3File builds an ID3v2.3 tag with a TIT2 frame followed by one MPEG frame.
func mp3File(title string) []byte {
	payload := append([]byte{0x00}, title...)
	n := len(payload)
	frame := append([]byte("TIT2"), byte(n>>24), byte(n>>16), byte(n>>8), byte(n), 0x00, 0x00)
	frame = append(frame, payload...)

	size := len(frame)
	out := []byte{'I', 'D', '3', 0x03, 0x00, 0x00,
		byte(size>>21) & 0x7F, byte(size>>14) & 0x7F, byte(size>>7) & 0x7F, byte(size) & 0x7F}
	out = append(out, frame...)
	out = append(out, 0xFF, 0xFB, 0x90, 0x00)
	return append(out, make([]byte, 400)...)
}

func writeTemp(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}
