package audio

import "fmt"

// CodecError reports a speech payload that cannot be turned into audio:
// missing or non-audio metadata, absent data, invalid base64, or a byte count
// that is not a whole number of 16-bit samples. Codec errors are final;
// retrying the same payload cannot succeed.
type CodecError struct {
	Reason string
	Err    error
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio codec: %s: %v", e.Reason, e.Err)
	}
	return "audio codec: " + e.Reason
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func codecError(reason string, err error) error {
	return &CodecError{Reason: reason, Err: err}
}
