package utils

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/kaptinlin/jsonrepair"
)

// MarshalJSON encodes v for an outbound request body.
func MarshalJSON(v any) ([]byte, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}
	return data, nil
}

// ParseJSON decodes data into a value of type T. When the payload is not
// valid JSON it is passed through jsonrepair and decoded once more, so a
// truncated or slightly malformed provider body still yields whatever fields
// survived.
//
// Example:
//
//	resp, err := utils.ParseJSON[generateContentResponse](body)
func ParseJSON[T any](data []byte) (T, error) {
	var result T

	err := sonic.Unmarshal(data, &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return result, fmt.Errorf("error unmarshaling response as %T: %w (repair failed: %v); preview: %s",
			result, err, repairErr, TruncateString(string(data), DefaultMaxStringLength))
	}

	var retry T
	if err := sonic.Unmarshal([]byte(repaired), &retry); err != nil {
		return result, fmt.Errorf("error unmarshaling repaired response as %T: %w; preview: %s",
			result, err, TruncateString(repaired, DefaultMaxStringLength))
	}

	return retry, nil
}
