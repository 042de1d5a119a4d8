// Package dump selects files under a folder and serializes them into one text report.
package dump

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/temirov/lister/internal/inventory"
	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

const errorUnknownModeFormat = "%w: %s"

// ErrUnknownMode is returned for selection modes outside 1-3.
var ErrUnknownMode = errors.New("unknown selection mode")

// CollectFiles enumerates the files a selection includes under folderPath, in report order.
func CollectFiles(folderPath string, selection types.Selection, exclusions utils.ExclusionSet) ([]types.FileEntry, error) {
	switch selection.Mode {
	case types.ModeAllPlusSubdirectories:
		directFiles, directError := collectDirectFiles(folderPath, folderPath, exclusions, nil)
		if directError != nil {
			return nil, directError
		}
		nestedFiles, nestedError := collectSubdirectoryFiles(folderPath, selection.Folders, exclusions)
		if nestedError != nil {
			return nil, nestedError
		}
		return append(directFiles, nestedFiles...), nil
	case types.ModeSubdirectoriesOnly:
		return collectSubdirectoryFiles(folderPath, selection.Folders, exclusions)
	case types.ModeSpecificFiles:
		return collectPatternFiles(folderPath, selection.Folders, selection.FilePatterns, exclusions)
	default:
		return nil, fmt.Errorf(errorUnknownModeFormat, ErrUnknownMode, selection.Mode)
	}
}

// collectDirectFiles returns the regular files directly inside directoryPath whose names
// satisfy accept (nil accepts all), with paths relative to folderPath.
func collectDirectFiles(folderPath string, directoryPath string, exclusions utils.ExclusionSet, accept func(string) bool) ([]types.FileEntry, error) {
	directoryEntries, listError := inventory.ListEntries(directoryPath, exclusions)
	if listError != nil {
		return nil, listError
	}
	var files []types.FileEntry
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			continue
		}
		if accept != nil && !accept(directoryEntry.Name()) {
			continue
		}
		absolutePath := filepath.Join(directoryPath, directoryEntry.Name())
		if !utils.IsRegularFilePath(absolutePath) {
			continue
		}
		files = append(files, types.FileEntry{
			RelativePath: utils.RelativePathOrSelf(absolutePath, folderPath),
			AbsolutePath: absolutePath,
		})
	}
	return files, nil
}

// collectSubdirectoryFiles walks every non-excluded directory below folderPath, top-down in
// name order, and takes the files of each directory whose own base name is allowed.
// An ancestor matching the allow-list does not admit its descendants.
func collectSubdirectoryFiles(folderPath string, allowedNames []string, exclusions utils.ExclusionSet) ([]types.FileEntry, error) {
	var files []types.FileEntry
	var walk func(directoryPath string) error
	walk = func(directoryPath string) error {
		if directoryPath != folderPath && isAllowedDirectory(filepath.Base(directoryPath), allowedNames) {
			directFiles, directError := collectDirectFiles(folderPath, directoryPath, exclusions, nil)
			if directError != nil {
				return directError
			}
			files = append(files, directFiles...)
		}
		directoryEntries, listError := inventory.ListEntries(directoryPath, exclusions)
		if listError != nil {
			return listError
		}
		for _, directoryEntry := range directoryEntries {
			if !directoryEntry.IsDir() {
				continue
			}
			if walkError := walk(filepath.Join(directoryPath, directoryEntry.Name())); walkError != nil {
				return walkError
			}
		}
		return nil
	}
	if walkError := walk(folderPath); walkError != nil {
		return nil, walkError
	}
	return files, nil
}

// collectPatternFiles takes, from each listed folder, the files whose names match a pattern.
// Missing folders are skipped and an empty pattern list selects nothing.
func collectPatternFiles(folderPath string, folders []string, patterns []string, exclusions utils.ExclusionSet) ([]types.FileEntry, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	if len(folders) == 0 {
		folders = []string{types.CurrentFolderToken}
	}

	matchesAnyPattern := func(name string) bool {
		for _, pattern := range patterns {
			if MatchName(pattern, name) {
				return true
			}
		}
		return false
	}

	var files []types.FileEntry
	for _, folder := range folders {
		folderKey := utils.NormalizeFolderKey(folder)
		directoryPath := folderPath
		if folderKey != types.CurrentFolderToken {
			directoryPath = filepath.Join(folderPath, filepath.FromSlash(folderKey))
		}
		if !utils.IsDirectoryPath(directoryPath) {
			continue
		}
		folderFiles, collectError := collectDirectFiles(folderPath, directoryPath, exclusions, matchesAnyPattern)
		if collectError != nil {
			return nil, collectError
		}
		files = append(files, folderFiles...)
	}
	return files, nil
}

// isAllowedDirectory treats an empty allow-list as "every subfolder" in modes 1 and 2.
// Mode 2 with no names therefore dumps all subfolders rather than nothing.
func isAllowedDirectory(name string, allowedNames []string) bool {
	return len(allowedNames) == 0 || utils.ContainsString(allowedNames, name)
}
