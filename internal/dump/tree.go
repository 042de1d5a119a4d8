package dump

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/lister/internal/inventory"
	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

// RenderScopedTree renders the part of folderPath a selection looks at: the folder's own
// files in mode 1 and, in every mode, the subfolders the selection names (all of them when
// the mode 1/2 allow-list is empty) with their complete subtrees.
func RenderScopedTree(folderPath string, selection types.Selection, exclusions utils.ExclusionSet) (string, error) {
	lines := []string{filepath.Base(folderPath)}

	directoryEntries, listError := inventory.ListEntries(folderPath, exclusions)
	if listError != nil {
		return "", listError
	}
	var scopedEntries []os.DirEntry
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			if isScopedDirectory(selection, directoryEntry.Name()) {
				scopedEntries = append(scopedEntries, directoryEntry)
			}
			continue
		}
		if selection.Mode == types.ModeAllPlusSubdirectories && utils.IsRegularFilePath(filepath.Join(folderPath, directoryEntry.Name())) {
			scopedEntries = append(scopedEntries, directoryEntry)
		}
	}

	for entryIndex, directoryEntry := range scopedEntries {
		isLast := entryIndex == len(scopedEntries)-1
		lines = append(lines, inventory.Connector(isLast)+directoryEntry.Name())
		if !directoryEntry.IsDir() {
			continue
		}
		childLines, childError := inventory.BuildTreeLines(filepath.Join(folderPath, directoryEntry.Name()), inventory.Padding(isLast), exclusions)
		if childError != nil {
			return "", childError
		}
		lines = append(lines, childLines...)
	}
	return strings.Join(lines, "\n"), nil
}

func isScopedDirectory(selection types.Selection, name string) bool {
	switch selection.Mode {
	case types.ModeAllPlusSubdirectories, types.ModeSubdirectoriesOnly:
		return isAllowedDirectory(name, selection.Folders)
	case types.ModeSpecificFiles:
		return utils.ContainsString(selection.Folders, name)
	default:
		return false
	}
}
