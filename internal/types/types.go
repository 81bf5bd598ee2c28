// Package types defines every cross‑package data structure used by the ctxtree CLI.
package types

import "encoding/json"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"

	// RootRelativePath is the relative path assigned to the traversal root.
	RootRelativePath = "."

	// UnlimitedDepth disables the depth limit of a traversal.
	UnlimitedDepth = -1
)

// Node is one filesystem entry of a rendered tree. It is implemented only by
// *FileNode and *DirectoryNode.
type Node interface {
	NodeName() string
	NodeRelativePath() string
	isNode()
}

// FileNode is a regular file. Content is nil unless the file was inlined.
type FileNode struct {
	Name         string
	RelativePath string
	SizeKB       int64
	Content      *string
}

// DirectoryNode is a directory with its children in enumeration order.
type DirectoryNode struct {
	Name         string
	RelativePath string
	Children     []Node
}

func (node *FileNode) NodeName() string         { return node.Name }
func (node *FileNode) NodeRelativePath() string { return node.RelativePath }
func (*FileNode) isNode()                       {}

func (node *DirectoryNode) NodeName() string         { return node.Name }
func (node *DirectoryNode) NodeRelativePath() string { return node.RelativePath }
func (*DirectoryNode) isNode()                       {}

// HasContent reports whether the file carries inlined content.
func (node *FileNode) HasContent() bool {
	return node.Content != nil
}

type fileNodeJSON struct {
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	SizeKB  int64   `json:"sizeKB"`
	Content *string `json:"content,omitempty"`
}

type directoryNodeJSON struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Children []Node `json:"children"`
}

// MarshalJSON encodes the file with a "file" type discriminator.
func (node *FileNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileNodeJSON{
		Type:    NodeTypeFile,
		Name:    node.Name,
		Path:    node.RelativePath,
		SizeKB:  node.SizeKB,
		Content: node.Content,
	})
}

// MarshalJSON encodes the directory with a "directory" type discriminator.
func (node *DirectoryNode) MarshalJSON() ([]byte, error) {
	children := node.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(directoryNodeJSON{
		Type:     NodeTypeDirectory,
		Name:     node.Name,
		Path:     node.RelativePath,
		Children: children,
	})
}

// TreeSummary captures aggregate counts of a built tree.
type TreeSummary struct {
	Directories  int   `json:"directories"`
	Files        int   `json:"files"`
	TotalKB      int64 `json:"totalKB"`
	InlinedFiles int   `json:"inlinedFiles"`
}

// Summarize walks the tree and counts its directories, files and inlined files.
func Summarize(root Node) TreeSummary {
	var summary TreeSummary
	var visit func(node Node)
	visit = func(node Node) {
		switch typed := node.(type) {
		case *FileNode:
			summary.Files++
			summary.TotalKB += typed.SizeKB
			if typed.HasContent() {
				summary.InlinedFiles++
			}
		case *DirectoryNode:
			summary.Directories++
			for _, child := range typed.Children {
				visit(child)
			}
		}
	}
	if root != nil {
		visit(root)
	}
	return summary
}
