// Package utils contains general helper functions used across the ctxtree tool.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	// HiddenEntryPrefix marks dot-files and dot-directories.
	HiddenEntryPrefix = "."
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ExcludeWildcard is the only wildcard recognized by exclude patterns.
	ExcludeWildcard = "*"
	// PatternListSeparator separates exclude patterns given as one string.
	PatternListSeparator = ","
)

// DefaultExcludePatterns lists the entries skipped when no exclude list is configured.
func DefaultExcludePatterns() []string {
	return []string{"node_modules", GitDirectoryName, "dist", "build", "coverage"}
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// NormalizePatterns splits comma-joined entries, trims whitespace, drops empty
// patterns and duplicates.
func NormalizePatterns(patterns []string) []string {
	var expanded []string
	for _, pattern := range patterns {
		for _, part := range strings.Split(pattern, PatternListSeparator) {
			trimmedPart := strings.TrimSpace(part)
			if trimmedPart == "" {
				continue
			}
			expanded = append(expanded, trimmedPart)
		}
	}
	return DeduplicatePatterns(expanded)
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// IsHiddenName reports whether an entry name starts with a dot.
func IsHiddenName(entryName string) bool {
	return strings.HasPrefix(entryName, HiddenEntryPrefix)
}

// ShouldExclude reports whether entryName matches any of the exclude patterns.
func ShouldExclude(entryName string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if MatchesExcludePattern(pattern, entryName) {
			return true
		}
	}
	return false
}

// MatchesExcludePattern matches a base name against a pattern in which "*"
// stands for any run of characters. The match is anchored at both ends and every
// other character is literal, so "*.log" matches "app.log" and "dist" matches
// only "dist".
func MatchesExcludePattern(pattern, entryName string) bool {
	if !strings.Contains(pattern, ExcludeWildcard) {
		return pattern == entryName
	}
	literalParts := strings.Split(pattern, ExcludeWildcard)
	firstPart := literalParts[0]
	lastPart := literalParts[len(literalParts)-1]
	if len(entryName) < len(firstPart)+len(lastPart) {
		return false
	}
	if !strings.HasPrefix(entryName, firstPart) || !strings.HasSuffix(entryName, lastPart) {
		return false
	}
	remainder := entryName[len(firstPart) : len(entryName)-len(lastPart)]
	for _, middlePart := range literalParts[1 : len(literalParts)-1] {
		partIndex := strings.Index(remainder, middlePart)
		if partIndex < 0 {
			return false
		}
		remainder = remainder[partIndex+len(middlePart):]
	}
	return true
}
