package flac

import (
	"bytes"
	"errors"
	"testing"
)

// streamInfoBody packs a 34-byte STREAMINFO body.
func streamInfoBody(rate uint32, channels, bps uint8, total uint64) []byte {
	b := make([]byte, 34)
	packed := uint64(rate)<<44 | uint64(channels-1)<<41 | uint64(bps-1)<<36 | total&0xFFFFFFFFF
	for i := 0; i < 8; i++ {
		b[10+i] = byte(packed >> (56 - 8*i))
	}
	return b
}

func TestDecodeStreamInfo_Literal(t *testing.T) {
	// 44100 Hz, stereo, 16 bit, 441000 samples.
	payload := []byte{
		0x10, 0x00, 0x10, 0x00, // block sizes
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // frame sizes
		0x0A, 0xC4, 0x42, 0xF0, 0x00, 0x06, 0xBA, 0xA8, 0x00,
	}

	got := DecodeStreamInfo(payload, 1_000_000)
	want := StreamInfo{
		SampleRate:         44100,
		StandardSampleRate: 44100,
		Channels:           2,
		BitsPerSample:      16,
		TotalSamples:       441000,
		DurationSeconds:    10,
		BitrateKbps:        800,
		Valid:              true,
	}
	if got != want {
		t.Errorf("DecodeStreamInfo() = %+v, want %+v", got, want)
	}
}

func TestDecodeStreamInfo_SampleRateByChannels(t *testing.T) {
	tests := []struct {
		name     string
		rate     uint32
		channels uint8
		wantRate uint32
	}{
		{"stereo", 48000, 2, 48000},
		{"mono doubles", 44100, 1, 88200},
		{"six channels", 96000, 6, 32000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeStreamInfo(streamInfoBody(tt.rate, tt.channels, 24, 1000), 0)
			if got.SampleRate != tt.wantRate {
				t.Errorf("SampleRate = %d, want %d", got.SampleRate, tt.wantRate)
			}
			if got.StandardSampleRate != tt.rate {
				t.Errorf("StandardSampleRate = %d, want %d", got.StandardSampleRate, tt.rate)
			}
			if got.Channels != tt.channels {
				t.Errorf("Channels = %d, want %d", got.Channels, tt.channels)
			}
			if got.BitsPerSample != 24 {
				t.Errorf("BitsPerSample = %d, want 24", got.BitsPerSample)
			}
		})
	}
}

func TestDecodeStreamInfo_TotalSamples36Bit(t *testing.T) {
	got := DecodeStreamInfo(streamInfoBody(44100, 2, 16, 0xFFFFFFFFF), 0)
	if got.TotalSamples != 0xFFFFFFFFF {
		t.Errorf("TotalSamples = %#x, want 0xFFFFFFFFF", got.TotalSamples)
	}
	if got.BitrateKbps != 0 {
		t.Errorf("BitrateKbps = %d with unknown file size, want 0", got.BitrateKbps)
	}
}

func TestDecodeStreamInfo_ZeroRate(t *testing.T) {
	got := DecodeStreamInfo(streamInfoBody(0, 2, 16, 1000), 5000)
	if !got.Valid {
		t.Fatal("Valid = false, want true")
	}
	if got.DurationSeconds != 0 || got.BitrateKbps != 0 {
		t.Errorf("duration/bitrate = %d/%d, want 0/0", got.DurationSeconds, got.BitrateKbps)
	}
}

func TestDecodeStreamInfo_Short(t *testing.T) {
	got := DecodeStreamInfo(make([]byte, 18), 1000)
	if got != (StreamInfo{}) {
		t.Errorf("DecodeStreamInfo(short) = %+v, want zero value", got)
	}
}

func TestReadStreamInfo(t *testing.T) {
	data := stream(
		block(1, false, make([]byte, 8)),
		block(0, true, streamInfoBody(44100, 2, 16, 44100)),
	)

	info, err := ReadStreamInfo(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadStreamInfo() error = %v", err)
	}
	if !info.Valid || info.StandardSampleRate != 44100 || info.DurationSeconds != 1 {
		t.Errorf("ReadStreamInfo() = %+v", info)
	}
}

func TestReadStreamInfo_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not flac", []byte("OggS\x00\x00"), ErrNotFLAC},
		{"no streaminfo", stream(block(1, false, nil), block(4, true, vorbisBody("v"))), ErrStreamInfoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadStreamInfo(bytes.NewReader(tt.data), int64(len(tt.data)))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
