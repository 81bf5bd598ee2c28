// Package tokenizer estimates how many model tokens a rendered tree occupies.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	errorFallbackTokenizerFormat = "initialize fallback tokenizer: %w"
	errorDefaultTokenizerFormat  = "initialize default tokenizer: %w"
)

var openAIModelPrefixes = []string{
	"gpt-",
	"o1",
	"o3",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

// NewCounter returns a Counter for the requested model together with the name
// of the model or encoding that will actually be used.
// Models unknown to tiktoken fall back to the cl100k_base encoding.
func NewCounter(cfg Config) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	lowerModel := strings.ToLower(model)

	if isOpenAIModel(lowerModel) {
		encoding, err := tiktoken.EncodingForModel(lowerModel)
		if err == nil && encoding != nil {
			return tiktokenCounter{encoding: encoding, name: lowerModel}, model, nil
		}
		fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
		if fallbackErr != nil {
			return nil, "", fmt.Errorf(errorFallbackTokenizerFormat, fallbackErr)
		}
		return tiktokenCounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
	}

	encoding, err := tiktoken.GetEncoding(defaultEncodingName)
	if err != nil {
		return nil, "", fmt.Errorf(errorDefaultTokenizerFormat, err)
	}
	return tiktokenCounter{encoding: encoding, name: defaultEncodingName}, defaultEncodingName, nil
}

func isOpenAIModel(model string) bool {
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
