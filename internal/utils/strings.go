package utils

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultMaxStringLength is the default maximum length for truncated log previews.
	DefaultMaxStringLength = 500
)

// TruncateString shortens s to at most maxLen bytes for log output, appending
// a suffix that records the original length. The cut never splits a UTF-8
// sequence. If maxLen is zero or negative, [DefaultMaxStringLength] is used.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:cut], len(s))
}

// TruncateRunes returns the first maxRunes characters of s and whether any
// characters were dropped. Character counting is by rune, so Thai text is cut
// on character boundaries rather than bytes.
func TruncateRunes(s string, maxRunes int) (string, bool) {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s, false
	}

	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i], true
		}
		count++
	}
	return s, false
}
