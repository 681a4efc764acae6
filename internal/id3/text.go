package id3

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encoding markers (first byte of a text frame payload).
const (
	EncodingISO88591 byte = 0
	EncodingUTF16    byte = 1 // with BOM
	EncodingUTF16BE  byte = 2 // v2.4
	EncodingUTF8     byte = 3 // v2.4
)

var (
	latin1  = charmap.ISO8859_1
	utf16   = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

// TextEncodingError is returned when frame text cannot be decoded with the
// encoding its marker declares.
type TextEncodingError struct {
	Encoding byte
	Reason   string
}

func (e *TextEncodingError) Error() string {
	return fmt.Sprintf("text encoding 0x%02x: %s", e.Encoding, e.Reason)
}

// decodeText decodes data according to an ID3 encoding marker. Trailing NUL
// terminators are removed.
func decodeText(data []byte, enc byte) (string, error) {
	var dec *encoding.Decoder
	switch enc {
	case EncodingISO88591:
		dec = latin1.NewDecoder()
	case EncodingUTF16, EncodingUTF16BE:
		if len(data)%2 != 0 {
			return "", &TextEncodingError{Encoding: enc, Reason: fmt.Sprintf("odd UTF-16 length %d", len(data))}
		}
		if enc == EncodingUTF16 {
			dec = utf16.NewDecoder()
		} else {
			dec = utf16be.NewDecoder()
		}
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return "", &TextEncodingError{Encoding: enc, Reason: "invalid UTF-8"}
		}
		return strings.TrimRight(string(data), "\x00"), nil
	default:
		return "", &TextEncodingError{Encoding: enc, Reason: "unknown encoding marker"}
	}

	out, err := dec.Bytes(data)
	if err != nil {
		return "", &TextEncodingError{Encoding: enc, Reason: err.Error()}
	}
	return strings.TrimRight(string(out), "\x00"), nil
}

// splitTerminated splits data at the first NUL terminator for the encoding.
// rest is nil when no terminator is present.
func splitTerminated(data []byte, enc byte) (head, rest []byte) {
	if enc == EncodingUTF16 || enc == EncodingUTF16BE {
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return data[:i], data[i+2:]
			}
		}
		return data, nil
	}

	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return data, nil
	}
	return data[:i], data[i+1:]
}
