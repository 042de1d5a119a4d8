// Package selector resolves operator input to exactly one inventoried folder.
package selector

import (
	"fmt"
	"io"

	"github.com/temirov/lister/internal/prompt"
	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

const (
	FolderPromptMessage    = "Which folder to list files/code from? (e.g., frontend/src): "
	CandidatePromptMessage = "Pick one (number): "
	noMatchMessage         = "No match – try again."
	multipleMatchesFormat  = "Multiple matches for '%s':\n"
	candidateLineFormat    = "%d: %s\n"

	errorSelectFolderFormat = "select folder: %w"
)

// SelectFolder prompts until the answer names a key of folders and returns its absolute
// path. Blank answers and "." select the traversal root. When a key holds several paths
// the operator picks one by number; an invalid pick is returned as an error.
func SelectFolder(prompter prompt.Prompter, folders types.InventoryMap, output io.Writer) (string, error) {
	for {
		answer, askError := prompt.Text(prompter, FolderPromptMessage)
		if askError != nil {
			return "", fmt.Errorf(errorSelectFolderFormat, askError)
		}
		candidates, found := folders[ResolveKey(answer)]
		if !found || len(candidates) == 0 {
			fmt.Fprintln(output, noMatchMessage)
			continue
		}
		if len(candidates) == 1 {
			return candidates[0], nil
		}

		fmt.Fprintf(output, multipleMatchesFormat, answer)
		for candidateIndex, candidatePath := range candidates {
			fmt.Fprintf(output, candidateLineFormat, candidateIndex+1, candidatePath)
		}
		pickedIndex, choiceError := prompt.Choice(prompter, CandidatePromptMessage, len(candidates))
		if choiceError != nil {
			return "", fmt.Errorf(errorSelectFolderFormat, choiceError)
		}
		return candidates[pickedIndex], nil
	}
}

// ResolveKey maps operator input to its inventory key.
func ResolveKey(answer string) string {
	normalizedKey := utils.NormalizeFolderKey(answer)
	if normalizedKey == "" || normalizedKey == types.CurrentFolderToken {
		return types.RootInventoryKey
	}
	return normalizedKey
}
