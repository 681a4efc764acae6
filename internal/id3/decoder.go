// Package id3 decodes the frames of an ID3v2 tag body.
//
// The decoder walks frames with a binary.Cursor and hands decoded text to a
// Sink. Running out of tag data is a normal end state and is reported through
// Result.Stop; only per-frame decode failures are returned as errors, and
// those never stop the walk.
package id3

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/simonhull/audiotag/internal/binary"
)

// Sink receives decoded fields.
type Sink interface {
	AddTextField(id, value string)
	AddComment(value string)
	AddGenre(value string)
	AddTrackNumber(value string)
	AddTrackCount(value string)
}

// StopReason records why the frame walk ended.
type StopReason int

const (
	// StopEnd means the walk consumed the whole tag.
	StopEnd StopReason = iota
	// StopPadding means a zero byte was found where a frame ID should start.
	StopPadding
	// StopTruncated means fewer bytes remained than a frame header needs.
	StopTruncated
	// StopBadSize means a frame declared a zero size or a size larger than the remaining data.
	StopBadSize
)

func (r StopReason) String() string {
	switch r {
	case StopEnd:
		return "end of tag"
	case StopPadding:
		return "padding"
	case StopTruncated:
		return "truncated"
	case StopBadSize:
		return "bad frame size"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result summarises a Decode call.
type Result struct {
	Stop     StopReason
	Consumed int // bytes of the tag body consumed, including the extended header
	Frames   int // frames handed to the sink
	Skipped  int // frames read but not decoded
}

// FrameError is a decode failure confined to one frame.
type FrameError struct {
	ID     string
	Offset int
	Err    error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %s at offset %d: %v", e.ID, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// Frame flag bits that make the payload undecodable without extra work.
const (
	v23FlagCompressed = 0x0080
	v23FlagEncrypted  = 0x0040

	v24FlagCompressed    = 0x0008
	v24FlagEncrypted     = 0x0004
	v24FlagUnsync        = 0x0002
	v24FlagDataLenIndic  = 0x0001
	dataLengthFieldBytes = 4
)

// Decoder walks ID3v2 frames. The zero value is ready to use and logs nothing.
type Decoder struct {
	log *zerolog.Logger
}

// NewDecoder returns a Decoder that logs skipped frames and early stops at
// debug level.
func NewDecoder(logger zerolog.Logger) *Decoder {
	return &Decoder{log: &logger}
}

func (d *Decoder) logger() *zerolog.Logger {
	if d == nil || d.log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return d.log
}

// Decode walks the frames of a tag body starting at the cursor's position.
//
// tagSize bounds the walk: no byte past start+tagSize is read, even when the
// cursor holds more. extendedHeader reports the tag header's extended-header
// flag; it is ignored for V22, where the same bit means compression.
//
// The returned error, if any, joins *FrameError values for frames that could
// not be decoded. The Result is valid either way.
func (d *Decoder) Decode(c *binary.Cursor, tagSize int, v Version, extendedHeader bool, sink Sink) (Result, error) {
	l, ok := layouts[v]
	if !ok {
		return Result{}, fmt.Errorf("unsupported ID3 version %d", uint8(v))
	}
	log := d.logger().With().Stringer("version", v).Logger()

	start := c.Position()
	end := start + tagSize
	if end > c.Len() {
		end = c.Len()
	}
	avail := func() int { return end - c.Position() }

	var (
		res  Result
		errs []error
	)
	finish := func(stop StopReason) (Result, error) {
		res.Stop = stop
		res.Consumed = c.Position() - start
		return res, errors.Join(errs...)
	}

	if extendedHeader && v != V22 {
		if stop, ok := skipExtendedHeader(c, v, avail()); !ok {
			log.Debug().Stringer("stop", stop).Msg("extended header does not fit in tag")
			return finish(stop)
		}
	}

	for c.Position() < end {
		if first, _ := c.PeekByte(); first == 0 {
			return finish(StopPadding)
		}
		if avail() < l.headerSize() {
			log.Debug().Int("remaining", avail()).Msg("frame header truncated")
			return finish(StopTruncated)
		}

		offset := c.Position() - start
		hdr, _ := c.ReadN(l.headerSize(), "frame header")
		id := string(hdr[:l.idWidth])
		size := frameSize(hdr[l.idWidth:l.idWidth+l.sizeWidth], l)
		var flags uint16
		if l.flagBytes > 0 {
			flags, _ = binary.Uint16BE(hdr[l.idWidth+l.sizeWidth:])
		}

		if size == 0 || int64(size) > int64(avail()) {
			log.Debug().Str("frame", id).Uint32("size", size).Int("remaining", avail()).Msg("frame size out of range")
			return finish(StopBadSize)
		}
		payload, _ := c.ReadN(int(size), "frame payload")

		if v == V22 {
			mapped, known := LookupV22(id)
			if !known || mapped == "" {
				log.Debug().Str("frame", id).Msg("no ID3v2.3 equivalent, skipping")
				res.Skipped++
				continue
			}
			id = mapped
		}

		payload, decodable := unwrapPayload(payload, flags, v)
		if !decodable {
			log.Debug().Str("frame", id).Uint16("flags", flags).Msg("compressed or encrypted frame, skipping")
			res.Skipped++
			continue
		}

		handled, err := dispatch(id, payload, sink)
		switch {
		case err != nil:
			errs = append(errs, &FrameError{ID: id, Offset: offset, Err: err})
		case handled:
			res.Frames++
		default:
			res.Skipped++
		}
	}

	return finish(StopEnd)
}

// skipExtendedHeader consumes the extended header that follows the tag header.
//
// In v2.3 the size field excludes its own 4 bytes, so the cursor moves past
// the field and then size bytes. In v2.4 the size is synchsafe and covers the
// whole extended header.
func skipExtendedHeader(c *binary.Cursor, v Version, avail int) (StopReason, bool) {
	if avail < 4 {
		return StopTruncated, false
	}
	field, _ := c.ReadN(4, "extended header size")

	var skip int64
	if v == V24 {
		size, _ := binary.Synchsafe(field)
		if size < 4 {
			return StopBadSize, false
		}
		skip = int64(size) - 4
	} else {
		size, _ := binary.Uint32BE(field)
		skip = int64(size)
	}

	if skip > int64(avail-4) {
		return StopTruncated, false
	}
	_ = c.Skip(int(skip), "extended header")
	return StopEnd, true
}

func frameSize(b []byte, l layout) uint32 {
	if l.synchsafe {
		v, _ := binary.Synchsafe(b)
		return v
	}
	if len(b) == 3 {
		v, _ := binary.Uint24BE(b)
		return v
	}
	v, _ := binary.Uint32BE(b)
	return v
}

// unwrapPayload strips per-frame encodings. ok is false when the payload
// cannot be decoded (compression or encryption).
func unwrapPayload(payload []byte, flags uint16, v Version) ([]byte, bool) {
	switch v {
	case V23:
		if flags&(v23FlagCompressed|v23FlagEncrypted) != 0 {
			return nil, false
		}
	case V24:
		if flags&(v24FlagCompressed|v24FlagEncrypted) != 0 {
			return nil, false
		}
		if flags&v24FlagDataLenIndic != 0 {
			if len(payload) < dataLengthFieldBytes {
				return nil, false
			}
			payload = payload[dataLengthFieldBytes:]
		}
		if flags&v24FlagUnsync != 0 {
			payload = RemoveUnsync(payload)
		}
	}
	return payload, true
}

// RemoveUnsync reverses the unsynchronisation scheme (0xFF 0x00 -> 0xFF).
func RemoveUnsync(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}

// dispatch routes a frame to the sink. handled is false for frames that are
// not decoded at all.
func dispatch(id string, payload []byte, sink Sink) (handled bool, err error) {
	switch {
	case len(id) < 4:
		return false, nil

	case id == "COMM":
		text, err := decodeComment(payload)
		if err != nil {
			return false, err
		}
		sink.AddComment(text)
		return true, nil

	case id[0] == 'T' && id[1] != 'X':
		text, err := decodeTextFrame(payload)
		if err != nil {
			return false, err
		}
		switch id {
		case "TCON":
			genre, err := ResolveGenre(text)
			if err != nil {
				return false, err
			}
			if genre != "" {
				sink.AddGenre(genre)
			}
		case "TRCK":
			number, count, _ := strings.Cut(text, "/")
			if number != "" {
				sink.AddTrackNumber(number)
			}
			if count != "" {
				sink.AddTrackCount(count)
			}
		default:
			sink.AddTextField(id, text)
		}
		return true, nil
	}

	return false, nil
}

// decodeTextFrame decodes [encoding][text].
func decodeTextFrame(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", errors.New("empty text frame")
	}
	return decodeText(payload[1:], payload[0])
}

// decodeComment decodes [encoding][language(3)][description\0][text].
func decodeComment(payload []byte) (string, error) {
	if len(payload) < 4 {
		return "", fmt.Errorf("comment frame too short: %d bytes", len(payload))
	}
	enc := payload[0]
	desc, text := splitTerminated(payload[4:], enc)
	if text == nil {
		// No description terminator: the whole remainder is the comment.
		text = desc
	}
	return decodeText(text, enc)
}
