package tokenizer

import (
	"errors"
	"unicode/utf8"
)

// CountResult captures the outcome of counting a text blob.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountText estimates tokens for the provided text using counter.
// Text that is not valid UTF-8 is reported as not counted.
func CountText(counter Counter, text string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if !utf8.ValidString(text) {
		return CountResult{Counted: false}, nil
	}
	tokens, err := counter.CountString(text)
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
