package inventory

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

const (
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorResolveRootFormat  = "resolving symbolic links in %s: %w"
	errorBuildTreeFormat    = "building tree for %s: %w"
	errorWalkFormat         = "walking %s: %w"
)

// Inventory is the result of one pass over the traversal root.
type Inventory struct {
	Root    string
	Tree    string
	Folders types.InventoryMap
}

// Build lists root once for the tree and walks it once for the folder map,
// pruning excluded directories before descending. A root reached through symbolic
// links is resolved first; links below the root stay unfollowed.
func Build(root string, exclusions utils.ExclusionSet) (*Inventory, error) {
	absoluteRoot, absolutePathError := ResolveRoot(root)
	if absolutePathError != nil {
		return nil, absolutePathError
	}

	treeLines, treeError := BuildTreeLines(absoluteRoot, "", exclusions)
	if treeError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, absoluteRoot, treeError)
	}
	treeText := strings.Join(append([]string{types.InventoryRootLabel}, treeLines...), "\n")

	folders, walkError := buildFolderMap(absoluteRoot, exclusions)
	if walkError != nil {
		return nil, walkError
	}

	return &Inventory{Root: absoluteRoot, Tree: treeText, Folders: folders}, nil
}

// ResolveRoot returns the absolute, symlink-free form of root.
func ResolveRoot(root string) (string, error) {
	absoluteRoot, absolutePathError := filepath.Abs(root)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, root, absolutePathError)
	}
	resolvedRoot, resolveError := filepath.EvalSymlinks(absoluteRoot)
	if resolveError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, absoluteRoot, resolveError)
	}
	return resolvedRoot, nil
}

func buildFolderMap(absoluteRoot string, exclusions utils.ExclusionSet) (types.InventoryMap, error) {
	folders := types.InventoryMap{}
	walkError := filepath.WalkDir(absoluteRoot, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			return accessError
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if walkedPath != absoluteRoot && exclusions.Excludes(walkedPath, true) {
			return filepath.SkipDir
		}
		folderKey := FolderKey(walkedPath, absoluteRoot)
		folders[folderKey] = append(folders[folderKey], walkedPath)
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(errorWalkFormat, absoluteRoot, walkError)
	}
	return folders, nil
}

// FolderKey returns the inventory key of absolutePath under root.
func FolderKey(absolutePath string, root string) string {
	relativePath := utils.RelativePathOrSelf(absolutePath, root)
	if relativePath == types.CurrentFolderToken {
		return types.RootInventoryKey
	}
	return relativePath
}

// Lookup returns the absolute paths stored under key.
func (inventory *Inventory) Lookup(key string) ([]string, bool) {
	paths, found := inventory.Folders[key]
	return paths, found && len(paths) > 0
}

// Keys returns the folder keys in sorted order.
func (inventory *Inventory) Keys() []string {
	keys := make([]string, 0, len(inventory.Folders))
	for key := range inventory.Folders {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
