package commands

import (
	"os"

	"go.uber.org/zap"

	"github.com/temirov/ctxtree/internal/types"
)

// TreeBuilder builds directory tree nodes using configured options.
// Defaults are applied by the caller; a zero MaxDepth means the root is not descended into.
type TreeBuilder struct {
	ExcludePatterns    []string
	IncludeContent     bool
	MaxDepth           int
	ShowHidden         bool
	ContentSizeLimitKB int64
	Logger             *zap.Logger

	readFile func(path string) ([]byte, error)
}

// NewTreeBuilder returns a builder with an unlimited depth and the supplied logger.
func NewTreeBuilder(logger *zap.Logger) *TreeBuilder {
	return &TreeBuilder{
		MaxDepth: types.UnlimitedDepth,
		Logger:   logger,
	}
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}

func (treeBuilder *TreeBuilder) fileReader() func(path string) ([]byte, error) {
	if treeBuilder.readFile == nil {
		return os.ReadFile
	}
	return treeBuilder.readFile
}

func (treeBuilder *TreeBuilder) depthReached(depth int) bool {
	return treeBuilder.MaxDepth != types.UnlimitedDepth && depth >= treeBuilder.MaxDepth
}
