package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

// tiktokenCounter counts tokens with an OpenAI BPE encoding.
type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter tiktokenCounter) Name() string {
	return counter.name
}

// CountString treats special-token text such as "<|endoftext|>" as ordinary text.
func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
