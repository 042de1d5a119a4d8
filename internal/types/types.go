// Package types defines every cross‑package data structure used by the lister CLI.
package types

import "strconv"

const (
	// RootInventoryKey is the inventory key of the traversal root itself.
	RootInventoryKey = "root"
	// InventoryRootLabel is the first line of the full inventory tree.
	InventoryRootLabel = "Root"

	DefaultInventoryFileName = "directory_inventory.txt"
	RootReportFileName       = "root_contents.txt"
	ReportFileSuffix         = "_contents.txt"

	// BinaryContentPlaceholder replaces the body of files that are not valid text.
	BinaryContentPlaceholder = "[Binary or non-UTF file - contents skipped]"

	CurrentFolderToken = "."
)

// SelectionMode decides which files under the chosen folder end up in a report.
type SelectionMode int

const (
	// ModeAllPlusSubdirectories includes the folder's own files plus files of allowed subfolders.
	ModeAllPlusSubdirectories SelectionMode = 1
	// ModeSubdirectoriesOnly includes files of allowed subfolders only.
	ModeSubdirectoriesOnly SelectionMode = 2
	// ModeSpecificFiles includes pattern-matched files of listed folders, non-recursively.
	ModeSpecificFiles SelectionMode = 3
)

// Valid reports whether the mode is one of the known selection modes.
func (mode SelectionMode) Valid() bool {
	switch mode {
	case ModeAllPlusSubdirectories, ModeSubdirectoriesOnly, ModeSpecificFiles:
		return true
	default:
		return false
	}
}

func (mode SelectionMode) String() string {
	switch mode {
	case ModeAllPlusSubdirectories:
		return "all-plus-subdirectories"
	case ModeSubdirectoriesOnly:
		return "subdirectories-only"
	case ModeSpecificFiles:
		return "specific-files"
	default:
		return "mode(" + strconv.Itoa(int(mode)) + ")"
	}
}

// Selection captures an operator's answers for one content dump.
//
// Folders is the subfolder allow-list for modes 1 and 2 (nil means every subfolder)
// and the folder list for mode 3 (nil means the chosen folder itself).
type Selection struct {
	Mode         SelectionMode
	Folders      []string
	FilePatterns []string
}

// InventoryMap maps a folder path relative to the traversal root to the absolute
// paths sharing it.
type InventoryMap map[string][]string

// FileEntry is one file selected for a report.
type FileEntry struct {
	RelativePath string
	AbsolutePath string
}

// Report describes a written content report.
type Report struct {
	Path        string
	Content     string
	Files       int
	BinaryFiles int
	Bytes       int64
	Tokens      int
	Model       string
}
