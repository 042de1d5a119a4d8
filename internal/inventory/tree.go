// Package inventory lists a directory tree once: as box-drawing text and as a map from
// relative folder path to absolute folder paths.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/temirov/lister/internal/utils"
)

const (
	TreeBranchConnector = "├── "
	TreeLastConnector   = "└── "
	TreeBranchPadding   = "│   "
	TreeLastPadding     = "    "

	// errorReadDirectoryFormat is used when a directory cannot be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// ListEntries returns the non-excluded entries of directoryPath sorted by name.
func ListEntries(directoryPath string, exclusions utils.ExclusionSet) ([]os.DirEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}
	visibleEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if exclusions.Excludes(filepath.Join(directoryPath, directoryEntry.Name()), directoryEntry.IsDir()) {
			continue
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}
	sort.Slice(visibleEntries, func(left, right int) bool {
		return visibleEntries[left].Name() < visibleEntries[right].Name()
	})
	return visibleEntries, nil
}

// BuildTreeLines renders every non-excluded descendant of directoryPath as one line,
// each starting with prefix. Symbolic links are leaves.
func BuildTreeLines(directoryPath string, prefix string, exclusions utils.ExclusionSet) ([]string, error) {
	directoryEntries, listError := ListEntries(directoryPath, exclusions)
	if listError != nil {
		return nil, listError
	}
	var lines []string
	for entryIndex, directoryEntry := range directoryEntries {
		isLast := entryIndex == len(directoryEntries)-1
		lines = append(lines, prefix+Connector(isLast)+directoryEntry.Name())
		if !directoryEntry.IsDir() {
			continue
		}
		childLines, childError := BuildTreeLines(filepath.Join(directoryPath, directoryEntry.Name()), prefix+Padding(isLast), exclusions)
		if childError != nil {
			return nil, childError
		}
		lines = append(lines, childLines...)
	}
	return lines, nil
}

// Connector returns the branch connector for an entry.
func Connector(isLast bool) string {
	if isLast {
		return TreeLastConnector
	}
	return TreeBranchConnector
}

// Padding returns the continuation prefix for the children of an entry.
func Padding(isLast bool) string {
	if isLast {
		return TreeLastPadding
	}
	return TreeBranchPadding
}
