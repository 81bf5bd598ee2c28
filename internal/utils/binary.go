package utils

import (
	"errors"
	"unicode/utf8"
)

// ErrNotText reports file bytes that do not decode as UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// DecodeText returns data as a string when it is valid UTF-8.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}
