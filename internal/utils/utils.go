// Package utils contains general helper functions used across the lister tool.
package utils

import (
	"path"
	"path/filepath"
	"strings"
)

const listSeparator = ","

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

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the slash-separated path of fullPath relative to root.
// Returns "." if both resolve to the same directory and the cleaned fullPath if no
// relative form exists.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)
	if cleanPath == cleanRoot {
		return "."
	}
	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// SplitList splits comma-separated operator input into trimmed, non-empty items.
// It returns nil when nothing remains.
func SplitList(input string) []string {
	var items []string
	for _, rawItem := range strings.Split(input, listSeparator) {
		trimmedItem := strings.TrimSpace(rawItem)
		if trimmedItem == "" {
			continue
		}
		items = append(items, trimmedItem)
	}
	return items
}

// NormalizeFolderKey converts operator input into inventory key form: forward slashes,
// no redundant separators, no trailing slash.
func NormalizeFolderKey(input string) string {
	trimmedInput := strings.TrimSpace(input)
	if trimmedInput == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(trimmedInput, "\\", "/"))
}
