// Package commands contains the core logic for building the project tree.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/ctxtree/internal/types"
	"github.com/temirov/ctxtree/internal/utils"
)

// ErrRootNotFound reports a traversal root that does not exist or cannot be accessed.
var ErrRootNotFound = errors.New("root directory not found")

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorRootNotFoundFormat wraps ErrRootNotFound with the offending path and cause.
	errorRootNotFoundFormat = "%w: %s: %v"

	warningStatPathMessage       = "unable to stat entry, skipping"
	warningReadDirectoryMessage  = "unable to read directory, children omitted"
	warningReadContentMessage    = "unable to read file content"
	warningDecodeContentMessage  = "file content is not text, content omitted"
	pathLogField                 = "path"
	relativePathLogField         = "relativePath"
	directoryEnumerationAllItems = -1
)

// Build walks rootPath and returns its tree. It returns ErrRootNotFound when the
// root cannot be stat'ed, and a nil node when the root itself is excluded.
func (treeBuilder *TreeBuilder) Build(rootPath string) (types.Node, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	if _, rootStatError := os.Stat(absoluteRootPath); rootStatError != nil {
		return nil, fmt.Errorf(errorRootNotFoundFormat, ErrRootNotFound, rootPath, rootStatError)
	}

	rootNode := treeBuilder.buildNode(absoluteRootPath, absoluteRootPath, 0)
	if rootNode == nil {
		return nil, nil
	}
	return rootNode, nil
}

// buildNode returns the node for entryPath, or nil when the entry is filtered out.
func (treeBuilder *TreeBuilder) buildNode(entryPath string, rootPath string, depth int) types.Node {
	entryName := filepath.Base(entryPath)
	relativePath := utils.RelativePathOrSelf(entryPath, rootPath)

	if utils.ShouldExclude(entryName, treeBuilder.ExcludePatterns) {
		return nil
	}
	if !treeBuilder.ShowHidden && utils.IsHiddenName(entryName) {
		return nil
	}

	entryInfo, statError := os.Stat(entryPath)
	if statError != nil {
		treeBuilder.logger().Warn(warningStatPathMessage, zap.String(pathLogField, entryPath), zap.Error(statError))
		return nil
	}

	switch {
	case entryInfo.IsDir():
		return treeBuilder.buildDirectoryNode(entryPath, rootPath, entryName, relativePath, depth)
	case entryInfo.Mode().IsRegular():
		return treeBuilder.buildFileNode(entryPath, entryName, relativePath, entryInfo.Size())
	default:
		return nil
	}
}

func (treeBuilder *TreeBuilder) buildDirectoryNode(directoryPath string, rootPath string, entryName string, relativePath string, depth int) types.Node {
	directoryNode := &types.DirectoryNode{
		Name:         entryName,
		RelativePath: relativePath,
		Children:     []types.Node{},
	}
	if treeBuilder.depthReached(depth) {
		return directoryNode
	}

	entryNames, readDirectoryError := readDirectoryNames(directoryPath)
	if readDirectoryError != nil {
		treeBuilder.logger().Warn(warningReadDirectoryMessage, zap.String(pathLogField, directoryPath), zap.Error(readDirectoryError))
		return directoryNode
	}

	for _, childName := range entryNames {
		childNode := treeBuilder.buildNode(filepath.Join(directoryPath, childName), rootPath, depth+1)
		if childNode != nil {
			directoryNode.Children = append(directoryNode.Children, childNode)
		}
	}
	return directoryNode
}

func (treeBuilder *TreeBuilder) buildFileNode(filePath string, entryName string, relativePath string, sizeBytes int64) types.Node {
	fileNode := &types.FileNode{
		Name:         entryName,
		RelativePath: relativePath,
		SizeKB:       utils.SizeInKilobytes(sizeBytes),
	}
	if !treeBuilder.IncludeContent || sizeBytes > utils.KilobytesToBytes(treeBuilder.ContentSizeLimitKB) {
		return fileNode
	}

	fileBytes, readError := treeBuilder.fileReader()(filePath)
	if readError != nil {
		treeBuilder.logger().Warn(warningReadContentMessage, zap.String(pathLogField, filePath), zap.String(relativePathLogField, relativePath), zap.Error(readError))
		return fileNode
	}
	content, decodeError := utils.DecodeText(fileBytes)
	if decodeError != nil {
		treeBuilder.logger().Warn(warningDecodeContentMessage, zap.String(pathLogField, filePath), zap.String(relativePathLogField, relativePath), zap.Error(decodeError))
		return fileNode
	}
	fileNode.Content = &content
	return fileNode
}

// readDirectoryNames lists the entries of directoryPath in the order the filesystem returns them.
func readDirectoryNames(directoryPath string) ([]string, error) {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	defer directoryHandle.Close()

	entryNames, readError := directoryHandle.Readdirnames(directoryEnumerationAllItems)
	if readError != nil && readError != io.EOF {
		return nil, readError
	}
	return entryNames, nil
}
