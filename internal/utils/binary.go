package utils

import "unicode/utf8"

// IsBinary reports whether the provided bytes cannot be emitted as text.
// Content that is not valid UTF-8 or carries a NUL byte counts as binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}
