// Package config defines the generation configuration, its defaults and validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/ctxtree/internal/types"
	"github.com/temirov/ctxtree/internal/utils"
)

const (
	// DefaultContentSizeLimitKB is the largest file, in KB, whose content is inlined by default.
	// A limit of zero inlines only empty files.
	DefaultContentSizeLimitKB = 100
	// DefaultTokenModel is the tokenizer model used when token counting is enabled.
	DefaultTokenModel = "gpt-4o"
	// UnlimitedDepthLiteral is accepted wherever a depth is parsed from text.
	UnlimitedDepthLiteral = "unlimited"
	// StdoutOutputPath writes the rendered tree to standard output.
	StdoutOutputPath = "-"
	// DefaultRootDirectory is the traversal root used when none is given.
	DefaultRootDirectory = "."

	errorMissingRootDirectory = "%w: rootDir is required"
	errorMissingOutputPath    = "%w: output path is required"
	errorInvalidDepth         = "%w: maxDepth must be a non-negative integer or %q, got %q"
	errorNegativeDepth        = "%w: maxDepth must be non-negative, got %d"
	errorInvalidSizeLimit     = "%w: contentSizeLimit must not be negative, got %d"
	errorInvalidFormat        = "%w: unsupported format %q"
)

// ErrInvalidConfiguration reports a configuration that cannot be used for generation.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Configuration holds every recognized generation option.
type Configuration struct {
	RootDir          string   `mapstructure:"rootDir"`
	OutputPath       string   `mapstructure:"output"`
	Exclude          []string `mapstructure:"-"`
	IncludeContent   bool     `mapstructure:"includeContent"`
	MaxDepth         int      `mapstructure:"-"`
	ShowHidden       bool     `mapstructure:"showHidden"`
	ContentSizeLimit int64    `mapstructure:"contentSizeLimit"`
	Format           string   `mapstructure:"format"`
	Tokens           bool     `mapstructure:"tokens"`
	TokenModel       string   `mapstructure:"model"`
	Copy             bool     `mapstructure:"copy"`
}

// DefaultConfiguration returns the configuration applied when an option is not provided.
func DefaultConfiguration() Configuration {
	return Configuration{
		RootDir:          DefaultRootDirectory,
		Exclude:          utils.DefaultExcludePatterns(),
		MaxDepth:         types.UnlimitedDepth,
		ContentSizeLimit: DefaultContentSizeLimitKB,
		Format:           types.FormatRaw,
		TokenModel:       DefaultTokenModel,
	}
}

// Validate reports the first problem that prevents generation.
func (configuration Configuration) Validate() error {
	if strings.TrimSpace(configuration.RootDir) == "" {
		return fmt.Errorf(errorMissingRootDirectory, ErrInvalidConfiguration)
	}
	if strings.TrimSpace(configuration.OutputPath) == "" {
		return fmt.Errorf(errorMissingOutputPath, ErrInvalidConfiguration)
	}
	if configuration.MaxDepth < types.UnlimitedDepth {
		return fmt.Errorf(errorNegativeDepth, ErrInvalidConfiguration, configuration.MaxDepth)
	}
	if configuration.ContentSizeLimit < 0 {
		return fmt.Errorf(errorInvalidSizeLimit, ErrInvalidConfiguration, configuration.ContentSizeLimit)
	}
	switch strings.ToLower(configuration.Format) {
	case types.FormatRaw, types.FormatJSON:
	default:
		return fmt.Errorf(errorInvalidFormat, ErrInvalidConfiguration, configuration.Format)
	}
	return nil
}

// WritesToStdout reports whether the rendered tree goes to standard output.
func (configuration Configuration) WritesToStdout() bool {
	return configuration.OutputPath == StdoutOutputPath
}

// ParseDepth converts textual depth input. An empty value or "unlimited" yields
// types.UnlimitedDepth; negative and non-integer values are rejected.
func ParseDepth(value string) (int, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" || normalized == UnlimitedDepthLiteral {
		return types.UnlimitedDepth, nil
	}
	depth, parseError := strconv.Atoi(normalized)
	if parseError != nil || depth < 0 {
		return 0, fmt.Errorf(errorInvalidDepth, ErrInvalidConfiguration, UnlimitedDepthLiteral, value)
	}
	return depth, nil
}

// FormatDepth is the inverse of ParseDepth.
func FormatDepth(depth int) string {
	if depth == types.UnlimitedDepth {
		return UnlimitedDepthLiteral
	}
	return strconv.Itoa(depth)
}
