package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func pcmPayload(samples ...int16) string {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// TestDecodeSample_RoundTrip verifies that every even-length buffer survives
// encode and re-parse with mono, 16-bit, and the rate from the mime type.
func TestDecodeSample_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		samples  []int16
		wantRate int
	}{
		{"explicit rate", "audio/L16;codec=pcm;rate=24000", []int16{0, 1, -1, 32767, -32768}, 24000},
		{"other rate", "audio/L16; rate=16000", []int16{100, -100}, 16000},
		{"no rate", "audio/pcm", []int16{42}, DefaultSampleRate},
		{"bad rate", "audio/L16;rate=abc", []int16{1, 2}, DefaultSampleRate},
		{"upper case key", "audio/L16;RATE=44100", []int16{7}, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample, err := DecodeSample(pcmPayload(tt.samples...), tt.mimeType)
			if err != nil {
				t.Fatalf("DecodeSample: %v", err)
			}

			wav := EncodeWAV(sample)
			header, err := ParseHeader(wav)
			if err != nil {
				t.Fatalf("ParseHeader: %v", err)
			}

			if header.Channels != 1 {
				t.Errorf("expected 1 channel, got %d", header.Channels)
			}
			if header.BitsPerSample != 16 {
				t.Errorf("expected 16 bits, got %d", header.BitsPerSample)
			}
			if header.SampleRate != tt.wantRate {
				t.Errorf("expected rate %d, got %d", tt.wantRate, header.SampleRate)
			}
			if header.ByteRate != tt.wantRate*2 || header.BlockAlign != 2 {
				t.Errorf("unexpected byte rate/block align: %+v", header)
			}
			if header.DataSize != len(tt.samples)*2 {
				t.Errorf("expected data size %d, got %d", len(tt.samples)*2, header.DataSize)
			}

			got := sample.Samples()
			for i := range tt.samples {
				if got[i] != tt.samples[i] {
					t.Errorf("sample %d: expected %d, got %d", i, tt.samples[i], got[i])
				}
			}
		})
	}
}

// TestEncodeWAV_BitExactHeader verifies every byte of the header layout.
func TestEncodeWAV_BitExactHeader(t *testing.T) {
	sample := &Sample{SampleRate: 24000, Channels: 1, BitDepth: 16, PCM: []byte{0x01, 0x02, 0x03, 0x04}}
	wav := EncodeWAV(sample)

	want := []byte{
		'R', 'I', 'F', 'F', 40, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0,
		1, 0, // PCM
		1, 0, // mono
		0xC0, 0x5D, 0, 0, // 24000
		0x80, 0xBB, 0, 0, // 48000
		2, 0,
		16, 0,
		'd', 'a', 't', 'a', 4, 0, 0, 0,
		0x01, 0x02, 0x03, 0x04,
	}

	if len(wav) != len(want) {
		t.Fatalf("expected %d bytes, got %d", len(want), len(wav))
	}
	for i := range want {
		if wav[i] != want[i] {
			t.Errorf("byte %d: expected 0x%02x, got 0x%02x", i, want[i], wav[i])
		}
	}
}

// TestDecodeSample_Errors verifies that malformed input is a CodecError.
func TestDecodeSample_Errors(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		mimeType string
	}{
		{"not audio", pcmPayload(1), "image/png"},
		{"empty mime", pcmPayload(1), ""},
		{"bare audio prefix", pcmPayload(1), "audio/"},
		{"absent data", "", "audio/L16;rate=24000"},
		{"invalid base64", "@@@@", "audio/L16;rate=24000"},
		{"odd length", base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), "audio/L16;rate=24000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSample(tt.payload, tt.mimeType)
			var codecErr *CodecError
			if !errors.As(err, &codecErr) {
				t.Fatalf("expected *CodecError, got %v", err)
			}
			if codecErr.Reason == "" {
				t.Error("expected a reason")
			}
		})
	}
}

// TestParseHeader_Rejects verifies that inconsistent containers are refused.
func TestParseHeader_Rejects(t *testing.T) {
	valid := EncodeWAV(&Sample{SampleRate: 8000, Channels: 1, BitDepth: 16, PCM: []byte{0, 0}})

	truncated := valid[:HeaderSize]
	badTag := append([]byte(nil), valid...)
	copy(badTag[0:4], "RIFX")
	padded := append(append([]byte(nil), valid...), 0, 0)

	for name, wav := range map[string][]byte{
		"short":     valid[:10],
		"truncated": truncated,
		"bad tag":   badTag,
		"padded":    padded,
	} {
		if _, err := ParseHeader(wav); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

// TestSampleRateFromMIME verifies rate extraction.
func TestSampleRateFromMIME(t *testing.T) {
	tests := map[string]int{
		"audio/L16;codec=pcm;rate=24000": 24000,
		"audio/L16; rate = 22050":        22050,
		"audio/L16;rate=0":               DefaultSampleRate,
		"audio/L16;rate=-5":              DefaultSampleRate,
		"audio/L16":                      DefaultSampleRate,
		"":                               DefaultSampleRate,
	}
	for mimeType, want := range tests {
		if got := SampleRateFromMIME(mimeType); got != want {
			t.Errorf("SampleRateFromMIME(%q) = %d, want %d", mimeType, got, want)
		}
	}
}

// TestSample_Duration verifies the length computation.
func TestSample_Duration(t *testing.T) {
	sample := &Sample{SampleRate: 24000, Channels: 1, BitDepth: 16, PCM: make([]byte, 48000)}
	if got := sample.Duration(); got != time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
}
