// Package flac decodes FLAC metadata blocks.
//
// A FLAC stream starts with the "fLaC" marker followed by metadata blocks,
// each prefixed by a 4-byte header:
//
//	is_last    1 bit
//	block_type 7 bits
//	length     24 bits (big-endian)
//
// The decoders here read from a plain io.Reader positioned at the start of the
// stream and never seek.
package flac

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Magic is the marker at the start of every FLAC stream.
const Magic = "fLaC"

var (
	// ErrNotFLAC is returned when the stream does not start with "fLaC".
	ErrNotFLAC = errors.New("not a FLAC stream")
	// ErrStreamInfoNotFound is returned when the last metadata block passes without a STREAMINFO block.
	ErrStreamInfoNotFound = errors.New("STREAMINFO block not found")
	// ErrTagNotFound is returned when the last metadata block passes without a VORBIS_COMMENT block.
	ErrTagNotFound = errors.New("VORBIS_COMMENT block not found")
)

// BlockType identifies a metadata block.
type BlockType uint8

// Metadata block types.
const (
	TypeStreamInfo    BlockType = 0
	TypePadding       BlockType = 1
	TypeApplication   BlockType = 2
	TypeSeekTable     BlockType = 3
	TypeVorbisComment BlockType = 4
	TypeCueSheet      BlockType = 5
	TypeUnknown       BlockType = 0x7F
)

var blockTypeName = map[BlockType]string{
	TypeStreamInfo:    "STREAMINFO",
	TypePadding:       "PADDING",
	TypeApplication:   "APPLICATION",
	TypeSeekTable:     "SEEKTABLE",
	TypeVorbisComment: "VORBIS_COMMENT",
	TypeCueSheet:      "CUESHEET",
}

func (t BlockType) String() string {
	if name, ok := blockTypeName[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// BlockHeader is the 4-byte header in front of every metadata block.
type BlockHeader struct {
	IsLast bool
	Type   BlockType
	// RawType is the 7-bit type as stored; Type is TypeUnknown for reserved values.
	RawType uint8
	// Length of the block body in bytes.
	Length uint32
}

// LengthMismatchError is returned when a block's content does not occupy
// exactly the length its header declares.
type LengthMismatchError struct {
	Type     BlockType
	Declared uint32
	Consumed int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s block declares %d bytes but its content occupies %d", e.Type, e.Declared, e.Consumed)
}

// ReadMagic consumes the 4-byte stream marker.
func ReadMagic(r io.Reader) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFLAC, err)
	}
	if string(magic[:]) != Magic {
		return fmt.Errorf("%w: found %q", ErrNotFLAC, magic[:])
	}
	return nil
}

// ReadBlockHeader reads a metadata block header.
func ReadBlockHeader(r io.Reader) (BlockHeader, error) {
	// bitio buffers non-ByteReaders, so read exactly the header first.
	var raw [4]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return BlockHeader{}, fmt.Errorf("read block header: %w", err)
	}

	br := bitio.NewReader(bytes.NewReader(raw[:]))
	last, err := br.ReadBool()
	if err != nil {
		return BlockHeader{}, err
	}
	typ, err := br.ReadBits(7)
	if err != nil {
		return BlockHeader{}, err
	}
	length, err := br.ReadBits(24)
	if err != nil {
		return BlockHeader{}, err
	}

	h := BlockHeader{
		IsLast:  last,
		RawType: uint8(typ),
		Type:    BlockType(typ),
		Length:  uint32(length),
	}
	if _, known := blockTypeName[h.Type]; !known {
		h.Type = TypeUnknown
	}
	return h, nil
}

// visitFunc handles one block. body yields exactly the block's bytes; any part
// left unread is skipped. Returning done stops the walk.
type visitFunc func(h BlockHeader, body io.Reader) (done bool, err error)

// errLastBlock reports that the walk passed the last metadata block.
var errLastBlock = errors.New("last metadata block reached")

// walk reads the marker and visits blocks until visit is done or the last
// block has been visited.
func walk(r io.Reader, visit visitFunc) error {
	if err := ReadMagic(r); err != nil {
		return err
	}

	for {
		h, err := ReadBlockHeader(r)
		if err != nil {
			return err
		}

		body := &io.LimitedReader{R: r, N: int64(h.Length)}
		done, err := visit(h, body)
		if err != nil || done {
			return err
		}

		if body.N > 0 {
			if _, err := io.Copy(io.Discard, body); err != nil {
				return fmt.Errorf("skip %s block: %w", h.Type, err)
			}
			if body.N > 0 {
				return fmt.Errorf("skip %s block: %w", h.Type, io.ErrUnexpectedEOF)
			}
		}

		if h.IsLast {
			return errLastBlock
		}
	}
}

// readBody reads a block body completely.
func readBody(h BlockHeader, body io.Reader) ([]byte, error) {
	payload := make([]byte, h.Length)
	if _, err := io.ReadFull(body, payload); err != nil {
		return nil, fmt.Errorf("read %s block: %w", h.Type, err)
	}
	return payload, nil
}

// Headers returns the headers of every metadata block in the stream.
func Headers(r io.Reader) ([]BlockHeader, error) {
	var headers []BlockHeader
	err := walk(r, func(h BlockHeader, _ io.Reader) (bool, error) {
		headers = append(headers, h)
		return false, nil
	})
	if errors.Is(err, errLastBlock) {
		err = nil
	}
	return headers, err
}
