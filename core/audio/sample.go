package audio

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/base64x"
)

const (
	// DefaultSampleRate is used when the mime type carries no rate token.
	DefaultSampleRate = 24000

	// Channels is fixed: the service only produces mono speech.
	Channels = 1

	// BitsPerSample is fixed: samples are signed 16-bit little-endian.
	BitsPerSample = 16

	bytesPerSample = BitsPerSample / 8
)

// Sample is one decoded speech payload. It is built per synthesis call,
// consumed once by EncodeWAV, and then discarded.
type Sample struct {
	SampleRate int
	Channels   int
	BitDepth   int

	// PCM holds the raw little-endian sample bytes exactly as decoded.
	PCM []byte
}

// DecodeSample decodes a base64 PCM payload described by mimeType.
func DecodeSample(payload, mimeType string) (*Sample, error) {
	if !isAudioMIME(mimeType) {
		return nil, codecError("mime type "+strconv.Quote(mimeType)+" is not audio", nil)
	}
	if payload == "" {
		return nil, codecError("audio data is absent", nil)
	}

	pcm, err := base64x.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, codecError("invalid base64 payload", err)
	}
	if len(pcm) == 0 {
		return nil, codecError("audio data is absent", nil)
	}
	if len(pcm)%bytesPerSample != 0 {
		return nil, codecError("payload of "+strconv.Itoa(len(pcm))+" bytes is not whole 16-bit samples", nil)
	}

	return &Sample{
		SampleRate: SampleRateFromMIME(mimeType),
		Channels:   Channels,
		BitDepth:   BitsPerSample,
		PCM:        pcm,
	}, nil
}

// SampleRateFromMIME extracts N from a "rate=<N>" parameter, returning
// DefaultSampleRate when the token is missing or not a positive integer.
func SampleRateFromMIME(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rate") {
			continue
		}
		rate, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil && rate > 0 {
			return rate
		}
	}
	return DefaultSampleRate
}

func isAudioMIME(mimeType string) bool {
	media, _, _ := strings.Cut(mimeType, ";")
	media = strings.ToLower(strings.TrimSpace(media))
	return strings.HasPrefix(media, "audio/") && len(media) > len("audio/")
}

// Samples reinterprets the PCM bytes as signed 16-bit little-endian values.
func (s *Sample) Samples() []int16 {
	out := make([]int16, len(s.PCM)/bytesPerSample)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(s.PCM[i*2:]))
	}
	return out
}

// Duration is the playback length at the sample's rate.
func (s *Sample) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	frames := len(s.PCM) / bytesPerSample / max(s.Channels, 1)
	return time.Duration(frames) * time.Second / time.Duration(s.SampleRate)
}
