package flac

import (
	"errors"
	"io"
)

// minStreamInfoLength is the number of STREAMINFO bytes the decoder uses.
// A standard STREAMINFO block is 34 bytes; only bytes 0..18 are needed here.
const minStreamInfoLength = 19

// StreamInfo holds the audio parameters from a STREAMINFO block.
//
// SampleRate follows the historical decoding: the 20-bit rate field is read
// one bit left-shifted and then divided by the channel count. For stereo
// streams this equals the stored rate; for other channel counts it does not.
// StandardSampleRate holds the rate exactly as the FLAC format defines it.
//
// Valid is false when the block was too short to decode; all other fields are
// zero in that case.
type StreamInfo struct {
	SampleRate         uint32
	StandardSampleRate uint32
	Channels           uint8
	BitsPerSample      uint8
	TotalSamples       uint64
	DurationSeconds    uint32
	BitrateKbps        uint32
	Valid              bool
}

// DecodeStreamInfo decodes a STREAMINFO block body. fileSize is the size of
// the whole file and only feeds the bitrate estimate.
func DecodeStreamInfo(payload []byte, fileSize int64) StreamInfo {
	if len(payload) < minStreamInfoLength {
		return StreamInfo{}
	}

	b10, b11, b12, b13 := uint32(payload[10]), uint32(payload[11]), uint32(payload[12]), uint32(payload[13])

	rawRate := b10<<13 | b11<<5 | (b12&0xF0)>>3
	channels := (b12>>1)&0x07 + 1
	bits := ((b12&0x01)<<4 | (b13&0xF0)>>4) + 1

	total := uint64(b13&0x0F)<<32 |
		uint64(payload[14])<<24 |
		uint64(payload[15])<<16 |
		uint64(payload[16])<<8 |
		uint64(payload[17])

	info := StreamInfo{
		SampleRate:         rawRate / channels,
		StandardSampleRate: b10<<12 | b11<<4 | b12>>4,
		Channels:           uint8(channels),
		BitsPerSample:      uint8(bits),
		TotalSamples:       total,
		Valid:              true,
	}

	if info.SampleRate > 0 {
		info.DurationSeconds = uint32(total / uint64(info.SampleRate))
	}
	if info.DurationSeconds > 0 && fileSize > 0 {
		info.BitrateKbps = uint32(uint64(fileSize/1000) * 8 / uint64(info.DurationSeconds))
	}

	return info
}

// ReadStreamInfo walks the metadata blocks of r and decodes the first
// STREAMINFO block it meets. The walk stops at that block whether or not it
// decodes; check StreamInfo.Valid.
func ReadStreamInfo(r io.Reader, fileSize int64) (StreamInfo, error) {
	var info StreamInfo
	err := walk(r, func(h BlockHeader, body io.Reader) (bool, error) {
		if h.Type != TypeStreamInfo {
			return false, nil
		}
		payload, err := readBody(h, body)
		if err != nil {
			return true, err
		}
		info = DecodeStreamInfo(payload, fileSize)
		return true, nil
	})
	if errors.Is(err, errLastBlock) {
		return StreamInfo{}, ErrStreamInfoNotFound
	}
	return info, err
}
