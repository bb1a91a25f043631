package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed size of the RIFF/WAVE header written by EncodeWAV.
const HeaderSize = 44

const (
	formatPCM     = 1
	fmtChunkSize  = 16
	riffFixedSize = 36
)

// Header is the format description recovered from a WAV container.
type Header struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	ByteRate      int
	BlockAlign    int
	DataSize      int
}

// EncodeWAV wraps the sample bytes in a 44-byte RIFF/WAVE header. The PCM
// bytes are copied verbatim: no resampling, no channel mixing.
func EncodeWAV(s *Sample) []byte {
	dataSize := len(s.PCM)
	blockAlign := s.Channels * s.BitDepth / 8

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+dataSize))

	buf.WriteString("RIFF")
	putUint32(buf, uint32(riffFixedSize+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	putUint32(buf, fmtChunkSize)
	putUint16(buf, formatPCM)
	putUint16(buf, uint16(s.Channels))
	putUint32(buf, uint32(s.SampleRate))
	putUint32(buf, uint32(s.SampleRate*blockAlign))
	putUint16(buf, uint16(blockAlign))
	putUint16(buf, uint16(s.BitDepth))

	buf.WriteString("data")
	putUint32(buf, uint32(dataSize))

	buf.Write(s.PCM)
	return buf.Bytes()
}

// ParseHeader reads the fixed 44-byte header written by EncodeWAV and checks
// that the declared sizes agree with the container length.
func ParseHeader(wav []byte) (Header, error) {
	if len(wav) < HeaderSize {
		return Header{}, codecError("container shorter than header", nil)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return Header{}, codecError("missing RIFF/WAVE tags", nil)
	}
	if string(wav[12:16]) != "fmt " || binary.LittleEndian.Uint32(wav[16:20]) != fmtChunkSize {
		return Header{}, codecError("unexpected format chunk", nil)
	}
	if binary.LittleEndian.Uint16(wav[20:22]) != formatPCM {
		return Header{}, codecError("format is not PCM", nil)
	}
	if string(wav[36:40]) != "data" {
		return Header{}, codecError("missing data chunk", nil)
	}

	header := Header{
		Channels:      int(binary.LittleEndian.Uint16(wav[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(wav[24:28])),
		ByteRate:      int(binary.LittleEndian.Uint32(wav[28:32])),
		BlockAlign:    int(binary.LittleEndian.Uint16(wav[32:34])),
		BitsPerSample: int(binary.LittleEndian.Uint16(wav[34:36])),
		DataSize:      int(binary.LittleEndian.Uint32(wav[40:44])),
	}

	if riff := int(binary.LittleEndian.Uint32(wav[4:8])); riff != riffFixedSize+header.DataSize {
		return Header{}, codecError("RIFF size does not match data size", nil)
	}
	if header.DataSize != len(wav)-HeaderSize {
		return Header{}, codecError("data size does not match container length", errors.New("truncated or padded container"))
	}
	return header, nil
}

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}
