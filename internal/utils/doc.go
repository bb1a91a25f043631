// Package utils provides shared low-level helpers for the studio internals:
// a raw JSON POST round-trip ([DoPost]), the JSON codec used for provider
// bodies ([MarshalJSON], [ParseJSON] with jsonrepair fallback), and string
// truncation for log previews and character-limited inputs.
package utils
