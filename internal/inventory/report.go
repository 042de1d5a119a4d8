package inventory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

const (
	inventoryPreambleFormat = "Directory Inventory (ignored: %s)\n\n"
	errorWriteInventory     = "write inventory to %s: %w"
)

// RenderReport returns the inventory file content for tree. The preamble names every
// exclusion source, including .gitignore rules when they were applied.
func RenderReport(tree string, exclusions utils.ExclusionSet) string {
	return fmt.Sprintf(inventoryPreambleFormat, exclusions.Describe()) + tree
}

// WriteReport writes the inventory tree into directory/fileName and returns the written path.
// An empty fileName selects types.DefaultInventoryFileName.
func WriteReport(directory string, fileName string, tree string, exclusions utils.ExclusionSet) (string, error) {
	if fileName == "" {
		fileName = types.DefaultInventoryFileName
	}
	destinationPath := filepath.Join(directory, fileName)
	if writeError := os.WriteFile(destinationPath, []byte(RenderReport(tree, exclusions)), 0o644); writeError != nil {
		return "", fmt.Errorf(errorWriteInventory, destinationPath, writeError)
	}
	return destinationPath, nil
}
