// Package output renders built trees as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/ctxtree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	separatorLine = "----------------------------------------"

	treeBranchConnector = "├─ "
	treeLastConnector   = "└─ "
	treeBranchPadding   = "│  "
	treeLastPadding     = "   "

	fileSizeSuffixFormat = " (%dKB)"
	lineTerminator       = "\n"
)

// FormatTree renders the tree as box-drawing text. A nil root renders as an empty string.
func FormatTree(root types.Node) string {
	var builder strings.Builder
	WriteTree(&builder, root)
	return builder.String()
}

// WriteTree renders the tree to the provided writer.
func WriteTree(writer io.Writer, root types.Node) {
	if root == nil {
		return
	}
	renderTreeNode(writer, root, "", true, true)
}

// treeNodeLinePrefix returns the connector printed before a node and the prefix
// inherited by its children and content block.
func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	if isLast {
		return prefix + treeLastConnector, prefix + treeLastPadding
	}
	return prefix + treeBranchConnector, prefix + treeBranchPadding
}

func renderTreeNode(writer io.Writer, node types.Node, prefix string, isRoot bool, isLast bool) {
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)

	switch typed := node.(type) {
	case *types.FileNode:
		fmt.Fprint(writer, linePrefix, typed.Name, fmt.Sprintf(fileSizeSuffixFormat, typed.SizeKB), lineTerminator)
		if typed.HasContent() {
			writeContentBlock(writer, *typed.Content, childPrefix)
		}
	case *types.DirectoryNode:
		fmt.Fprint(writer, linePrefix, typed.Name, lineTerminator)
		lastIndex := len(typed.Children) - 1
		for index, child := range typed.Children {
			renderTreeNode(writer, child, childPrefix, false, index == lastIndex)
		}
	}
}

// writeContentBlock frames content between two separator lines at the given indentation.
func writeContentBlock(writer io.Writer, content string, contentPrefix string) {
	fmt.Fprint(writer, contentPrefix, separatorLine, lineTerminator)
	trimmedContent := strings.TrimSuffix(content, lineTerminator)
	if content != "" {
		for _, contentLine := range strings.Split(trimmedContent, lineTerminator) {
			fmt.Fprint(writer, contentPrefix, contentLine, lineTerminator)
		}
	}
	fmt.Fprint(writer, contentPrefix, separatorLine, lineTerminator)
}

// RenderJSON marshals the tree as an indented JSON document.
func RenderJSON(root types.Node) (string, error) {
	if root == nil {
		return "null", nil
	}
	encoded, jsonEncodeError := json.MarshalIndent(root, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// FormatSummaryLine formats a tree summary with an optional token estimate.
func FormatSummaryLine(summary types.TreeSummary, tokens int, model string) string {
	directoryLabel := "directories"
	if summary.Directories == 1 {
		directoryLabel = "directory"
	}
	fileLabel := "files"
	if summary.Files == 1 {
		fileLabel = "file"
	}
	extra := ""
	if summary.InlinedFiles > 0 {
		extra += fmt.Sprintf(", %d inlined", summary.InlinedFiles)
	}
	if tokens > 0 {
		extra += fmt.Sprintf(", %d tokens", tokens)
	}
	modelSuffix := ""
	if model != "" && tokens > 0 {
		modelSuffix = fmt.Sprintf(" (model: %s)", model)
	}
	return fmt.Sprintf("Summary: %d %s, %d %s, %dKB%s%s", summary.Directories, directoryLabel, summary.Files, fileLabel, summary.TotalKB, extra, modelSuffix)
}
