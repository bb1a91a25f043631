// Package audio turns the raw speech payload returned by the remote service
// into a standalone, playable WAV file.
//
// The provider returns base64-encoded signed 16-bit little-endian mono PCM
// with the sample rate carried in the mime type ("audio/L16;codec=pcm;rate=24000").
// [DecodeSample] validates and decodes that payload, [EncodeWAV] prepends the
// fixed 44-byte RIFF/WAVE header, and a [Library] materializes the result as a
// URL-addressable [Resource] that a player can open and that must be released
// when it is replaced.
//
// The container layout is bit-exact:
//
//	offset  size  field
//	0       4     "RIFF"
//	4       4     36 + dataSize
//	8       4     "WAVE"
//	12      4     "fmt "
//	16      4     16
//	20      2     1 (PCM)
//	22      2     1 (channels)
//	24      4     sampleRate
//	28      4     sampleRate * 2
//	32      2     2 (block align)
//	34      2     16 (bits per sample)
//	36      4     "data"
//	40      4     dataSize
//	44      ...   samples, verbatim
package audio
