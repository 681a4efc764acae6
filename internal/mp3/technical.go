package mp3

import (
	"errors"
	"time"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// Layer III bitrates in kbps, indexed by the 4-bit bitrate field.
var (
	bitrateMPEG1 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitrateMPEG2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sample rates in Hz, indexed by the 2-bit sample rate field.
var (
	sampleRateMPEG1 = [4]int{44100, 48000, 32000, 0}
	sampleRateMPEG2 = [4]int{22050, 24000, 16000, 0}
)

// maxSyncScan bounds how far past the tag the frame sync search goes.
const maxSyncScan = 64 * 1024

var errNoFrame = errors.New("no valid MP3 frame found")

// frameHeader is a decoded MPEG audio frame header.
type frameHeader struct {
	mpeg1      bool
	bitrate    int // bps
	sampleRate int
	channels   int
}

func (h frameHeader) samplesPerFrame() int {
	if h.mpeg1 {
		return 1152
	}
	return 576
}

// sideInfoSize is the size of the Layer III side information, which sits
// between the frame header and a Xing/Info header.
func (h frameHeader) sideInfoSize() int64 {
	switch {
	case h.mpeg1 && h.channels == 1:
		return 17
	case h.mpeg1:
		return 32
	case h.channels == 1:
		return 9
	default:
		return 17
	}
}

// parseTechnicalInfo extracts bitrate, sample rate, codec, and duration from MP3 frames.
func parseTechnicalInfo(sr *binutil.SafeReader, audioStart int64, file *types.File) error {
	fileSize := sr.Size()
	limit := min(fileSize-4, audioStart+maxSyncScan)

	for off := audioStart; off < limit; off++ {
		raw, err := binutil.Read[uint32](sr, off, "MP3 frame header")
		if err != nil {
			return err
		}
		h, ok := decodeFrameHeader(raw)
		if !ok {
			continue
		}

		file.Audio.Codec = "MP3"
		file.Audio.Container = "MP3"
		file.Audio.Bitrate = h.bitrate
		file.Audio.SampleRate = h.sampleRate
		file.Audio.Channels = h.channels

		if frames, ok := vbrFrameCount(sr, off, h); ok {
			samples := uint64(frames) * uint64(h.samplesPerFrame())
			file.Audio.TotalSamples = samples
			file.Audio.Duration = samplesDuration(samples, h.sampleRate)
			file.Audio.VBR = true
			if secs := file.Audio.Duration.Seconds(); secs > 0 {
				file.Audio.Bitrate = int(float64((fileSize-off)*8) / secs)
			}
		} else {
			file.Audio.Duration = estimateCBRDuration(h.bitrate, fileSize-off)
		}
		return nil
	}

	return errNoFrame
}

// decodeFrameHeader validates and decodes an MPEG-1/2 Layer III frame header.
func decodeFrameHeader(header uint32) (frameHeader, bool) {
	if binutil.Bits(uint64(header), 21, 11) != 0x7FF {
		return frameHeader{}, false
	}

	version := binutil.Bits(uint64(header), 19, 2)
	layer := binutil.Bits(uint64(header), 17, 2)
	if (version != 3 && version != 2) || layer != 1 {
		return frameHeader{}, false
	}

	h := frameHeader{mpeg1: version == 3}
	bitrates, rates := bitrateMPEG2, sampleRateMPEG2
	if h.mpeg1 {
		bitrates, rates = bitrateMPEG1, sampleRateMPEG1
	}
	h.bitrate = bitrates[binutil.Bits(uint64(header), 12, 4)] * 1000
	h.sampleRate = rates[binutil.Bits(uint64(header), 10, 2)]
	if h.bitrate == 0 || h.sampleRate == 0 {
		return frameHeader{}, false
	}

	h.channels = 2
	if binutil.Bits(uint64(header), 6, 2) == 3 {
		h.channels = 1
	}
	return h, true
}

// vbrFrameCount reads the frame count from a Xing/Info or VBRI header in the
// first frame.
func vbrFrameCount(sr *binutil.SafeReader, frameOffset int64, h frameHeader) (uint32, bool) {
	xing := frameOffset + 4 + h.sideInfoSize()
	if tag, err := sr.ReadBytes(4, xing, "Xing header"); err == nil {
		if s := string(tag); s == "Xing" || s == "Info" {
			flags, err := binutil.Read[uint32](sr, xing+4, "Xing flags")
			if err != nil || flags&0x0001 == 0 {
				return 0, false
			}
			frames, err := binutil.Read[uint32](sr, xing+8, "Xing frame count")
			return frames, err == nil && frames > 0
		}
	}

	// VBRI always sits 32 bytes after the frame header.
	vbri := frameOffset + 4 + 32
	if tag, err := sr.ReadBytes(4, vbri, "VBRI header"); err == nil && string(tag) == "VBRI" {
		frames, err := binutil.Read[uint32](sr, vbri+14, "VBRI frame count")
		return frames, err == nil && frames > 0
	}
	return 0, false
}

func samplesDuration(samples uint64, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(sampleRate) * float64(time.Second))
}

// estimateCBRDuration estimates duration for constant bitrate files.
func estimateCBRDuration(bitrate int, audioSize int64) time.Duration {
	if bitrate == 0 || audioSize <= 0 {
		return 0
	}
	return time.Duration(float64(audioSize*8) / float64(bitrate) * float64(time.Second))
}
