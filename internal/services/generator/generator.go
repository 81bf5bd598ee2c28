// Package generator builds, renders and writes a project tree in one call.
package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ctxtree/internal/commands"
	"github.com/temirov/ctxtree/internal/config"
	"github.com/temirov/ctxtree/internal/output"
	"github.com/temirov/ctxtree/internal/services/clipboard"
	"github.com/temirov/ctxtree/internal/tokenizer"
	"github.com/temirov/ctxtree/internal/types"
)

const (
	outputFilePermissions = 0o644

	errorBuildTreeFormat    = "building tree for %s: %w"
	errorRootExcludedFormat = "%w: %s matches an exclude pattern or is hidden"
	errorRenderFormat       = "rendering tree: %w"
	errorWriteOutputFormat  = "writing output to %s: %w"

	warningTokenCountMessage = "failed to count tokens"
	warningTokenizerMessage  = "failed to initialize tokenizer"
	warningCopyMessage       = "failed to copy output to clipboard"
	copiedMessage            = "copied output to clipboard"
)

// ErrRootExcluded reports a root that the exclude list or the hidden-entry policy filters out,
// which would otherwise render as an empty tree.
var ErrRootExcluded = errors.New("root directory is excluded")

// Dependencies are the collaborators used by Generate. Nil members are replaced by defaults.
type Dependencies struct {
	Logger       *zap.Logger
	Stdout       io.Writer
	TokenCounter tokenizer.Counter
	Copier       clipboard.Copier
}

// Result describes a completed generation.
type Result struct {
	OutputPath string
	Bytes      int
	Summary    types.TreeSummary
	Tokens     int
	Model      string
}

// Generate validates configuration, builds the tree under RootDir, renders it and
// writes it to OutputPath, replacing any existing file. Nothing is written when the
// configuration is invalid, the root cannot be found or is itself excluded.
func Generate(configuration config.Configuration, dependencies Dependencies) (Result, error) {
	if validationError := configuration.Validate(); validationError != nil {
		return Result{}, validationError
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	treeBuilder := &commands.TreeBuilder{
		ExcludePatterns:    configuration.Exclude,
		IncludeContent:     configuration.IncludeContent,
		MaxDepth:           configuration.MaxDepth,
		ShowHidden:         configuration.ShowHidden,
		ContentSizeLimitKB: configuration.ContentSizeLimit,
		Logger:             logger,
	}
	rootNode, buildError := treeBuilder.Build(configuration.RootDir)
	if buildError != nil {
		return Result{}, fmt.Errorf(errorBuildTreeFormat, configuration.RootDir, buildError)
	}
	if rootNode == nil {
		return Result{}, fmt.Errorf(errorRootExcludedFormat, ErrRootExcluded, configuration.RootDir)
	}

	renderedText, renderError := render(rootNode, configuration.Format)
	if renderError != nil {
		return Result{}, fmt.Errorf(errorRenderFormat, renderError)
	}
	if writeError := writeOutput(configuration, dependencies.Stdout, renderedText); writeError != nil {
		return Result{}, fmt.Errorf(errorWriteOutputFormat, configuration.OutputPath, writeError)
	}

	result := Result{
		OutputPath: configuration.OutputPath,
		Bytes:      len(renderedText),
		Summary:    types.Summarize(rootNode),
	}
	if configuration.Tokens {
		result.Tokens, result.Model = countTokens(logger, dependencies.TokenCounter, configuration.TokenModel, renderedText)
	}
	if configuration.Copy {
		copier := dependencies.Copier
		if copier == nil {
			copier = clipboard.NewService()
		}
		if copyError := copier.Copy(renderedText); copyError != nil {
			logger.Warn(warningCopyMessage, zap.Error(copyError))
		} else {
			logger.Info(copiedMessage)
		}
	}

	logger.Info(output.FormatSummaryLine(result.Summary, result.Tokens, result.Model), zap.String("output", configuration.OutputPath))
	return result, nil
}

func render(rootNode types.Node, format string) (string, error) {
	if strings.EqualFold(format, types.FormatJSON) {
		renderedJSON, renderError := output.RenderJSON(rootNode)
		if renderError != nil {
			return "", renderError
		}
		return renderedJSON + "\n", nil
	}
	return output.FormatTree(rootNode), nil
}

func writeOutput(configuration config.Configuration, stdout io.Writer, renderedText string) error {
	if configuration.WritesToStdout() {
		if stdout == nil {
			stdout = os.Stdout
		}
		_, writeError := io.WriteString(stdout, renderedText)
		return writeError
	}
	return os.WriteFile(configuration.OutputPath, []byte(renderedText), outputFilePermissions)
}

// countTokens returns the token estimate and the model that produced it; failures are logged and yield zero.
func countTokens(logger *zap.Logger, counter tokenizer.Counter, model string, renderedText string) (int, string) {
	if counter == nil {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
		if counterError != nil {
			logger.Warn(warningTokenizerMessage, zap.String("model", model), zap.Error(counterError))
			return 0, ""
		}
		counter = createdCounter
		model = resolvedModel
	}
	countResult, countError := tokenizer.CountText(counter, renderedText)
	if countError != nil {
		logger.Warn(warningTokenCountMessage, zap.Error(countError))
		return 0, ""
	}
	if !countResult.Counted {
		return 0, ""
	}
	return countResult.Tokens, model
}
