package commands

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/ctxtree/internal/types"
)

func TestBuildFileNodeReadFailures(t *testing.T) {
	testCases := []struct {
		name            string
		fileContent     string
		readFile        func(string) ([]byte, error)
		expectedWarning string
	}{
		{
			name:            "permission_denied",
			fileContent:     "readable by stat only",
			readFile:        func(string) ([]byte, error) { return nil, fs.ErrPermission },
			expectedWarning: warningReadContentMessage,
		},
		{
			name:            "invalid_utf8",
			fileContent:     "\xff\xfe",
			expectedWarning: warningDecodeContentMessage,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rootDirectory := t.TempDir()
			filePath := filepath.Join(rootDirectory, "notes.txt")
			if writeError := os.WriteFile(filePath, []byte(testCase.fileContent), 0o644); writeError != nil {
				t.Fatalf("write: %v", writeError)
			}
			observedCore, observedLogs := observer.New(zapcore.WarnLevel)
			treeBuilder := NewTreeBuilder(zap.New(observedCore))
			treeBuilder.IncludeContent = true
			treeBuilder.ContentSizeLimitKB = 1
			treeBuilder.readFile = testCase.readFile

			rootNode, buildError := treeBuilder.Build(rootDirectory)
			if buildError != nil {
				t.Fatalf("Build error: %v", buildError)
			}
			directory := rootNode.(*types.DirectoryNode)
			if len(directory.Children) != 1 {
				t.Fatalf("expected the file node to be kept, got %d children", len(directory.Children))
			}
			if directory.Children[0].(*types.FileNode).HasContent() {
				t.Fatalf("content must be unset after a failed read")
			}
			warnings := observedLogs.FilterMessage(testCase.expectedWarning)
			if warnings.Len() != 1 || observedLogs.Len() != 1 {
				t.Fatalf("expected one %q warning, got %v", testCase.expectedWarning, observedLogs.All())
			}
			if warnings.All()[0].ContextMap()[relativePathLogField] != "notes.txt" {
				t.Fatalf("warning does not name the file: %v", warnings.All()[0].ContextMap())
			}
		})
	}
}
