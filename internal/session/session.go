// Package session runs the interactive inventory-then-dump flow.
package session

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/temirov/lister/internal/dump"
	"github.com/temirov/lister/internal/inventory"
	"github.com/temirov/lister/internal/prompt"
	"github.com/temirov/lister/internal/selector"
	"github.com/temirov/lister/internal/services/clipboard"
	"github.com/temirov/lister/internal/tokenizer"
	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

const (
	InventoryPromptMessage  = "Want a .txt with the folder/file map (no code)? (y/n): "
	ModePromptMessage       = "Enter mode (1-3): "
	SubfolderPromptMessage  = "Enter subfolder names (comma-separated, or empty for all): "
	FolderListPromptMessage = "Enter folder names (comma-separated, use '.' for root folder): "
	PatternPromptMessage    = "Enter file names/patterns (comma-separated, e.g., index.js,*.py): "

	modeMenu = "\nChoose mode:\n" +
		"1: All files in folder + specific subfolders\n" +
		"2: Only subfolders' files (skip folder's direct files)\n" +
		"3: Specific files in specific folders\n"

	inventoryingMessage = "Inventorying..."
	savedMessageFormat  = "Saved to %s\n"
	reportSummaryFormat = "%d files, %s of text, %d binary skipped\n"
	tokenEstimateFormat = "Estimated tokens (%s): %d\n"
	copiedMessage       = "Report copied to clipboard."
	doneMessage         = "Done."

	errorInventoryFormat = "inventory %s: %w"
	errorPromptFormat    = "%s: %w"
	errorModeFormat      = "%w: %q"
	errorDumpFormat      = "dump %s: %w"
)

// ErrInvalidMode is returned when the operator enters a mode outside 1-3.
var ErrInvalidMode = errors.New("invalid mode")

// Options configures one session run.
type Options struct {
	Root            string
	OutputDirectory string
	InventoryFile   string
	Exclusions      utils.ExclusionSet
	Prompter        prompt.Prompter
	Output          io.Writer
	Logger          *zap.Logger
	TokenCounter    tokenizer.Counter
	TokenModel      string
	Copier          clipboard.Copier
}

// Run inventories Root, optionally saves the inventory report, asks for a folder and a
// selection mode, and writes the content report for that folder.
func Run(options Options) error {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	output := options.Output
	if output == nil {
		output = io.Discard
	}
	outputDirectory := options.OutputDirectory
	if outputDirectory == "" {
		outputDirectory = options.Root
	}

	fmt.Fprintln(output, inventoryingMessage)
	projectInventory, buildError := inventory.Build(options.Root, options.Exclusions)
	if buildError != nil {
		return fmt.Errorf(errorInventoryFormat, options.Root, buildError)
	}
	logger.Debug("inventory built", zap.String("root", projectInventory.Root), zap.Int("folders", len(projectInventory.Folders)))

	wantsInventory, confirmError := prompt.Confirm(options.Prompter, InventoryPromptMessage)
	if confirmError != nil {
		return fmt.Errorf(errorPromptFormat, "inventory prompt", confirmError)
	}
	if wantsInventory {
		inventoryPath, writeError := inventory.WriteReport(outputDirectory, options.InventoryFile, projectInventory.Tree, options.Exclusions)
		if writeError != nil {
			return writeError
		}
		fmt.Fprintf(output, savedMessageFormat, filepath.Base(inventoryPath))
	}

	folderPath, selectError := selector.SelectFolder(options.Prompter, projectInventory.Folders, output)
	if selectError != nil {
		return selectError
	}
	logger.Debug("folder selected", zap.String("folder", folderPath))

	selection, selectionError := askSelection(options.Prompter, output)
	if selectionError != nil {
		return selectionError
	}

	dumper := dump.Dumper{
		Root:            projectInventory.Root,
		OutputDirectory: outputDirectory,
		Exclusions:      options.Exclusions,
		Logger:          logger,
		TokenCounter:    options.TokenCounter,
		TokenModel:      options.TokenModel,
	}
	report, dumpError := dumper.Dump(folderPath, selection)
	if dumpError != nil {
		return fmt.Errorf(errorDumpFormat, folderPath, dumpError)
	}
	fmt.Fprintf(output, savedMessageFormat, filepath.Base(report.Path))
	fmt.Fprintf(output, reportSummaryFormat, report.Files, utils.FormatByteSize(report.Bytes), report.BinaryFiles)
	if report.Model != "" {
		fmt.Fprintf(output, tokenEstimateFormat, report.Model, report.Tokens)
	}

	if options.Copier != nil {
		if copyError := options.Copier.Copy(report.Content); copyError != nil {
			logger.Warn("clipboard copy failed", zap.Error(copyError))
		} else {
			fmt.Fprintln(output, copiedMessage)
		}
	}

	fmt.Fprintln(output, doneMessage)
	return nil
}

// askSelection shows the mode menu and gathers the parameters of the chosen mode.
func askSelection(prompter prompt.Prompter, output io.Writer) (types.Selection, error) {
	fmt.Fprint(output, modeMenu)
	modeAnswer, askError := prompt.Text(prompter, ModePromptMessage)
	if askError != nil {
		return types.Selection{}, fmt.Errorf(errorPromptFormat, "mode prompt", askError)
	}
	mode, parseError := ParseMode(modeAnswer)
	if parseError != nil {
		return types.Selection{}, parseError
	}

	selection := types.Selection{Mode: mode}
	var listError error
	switch mode {
	case types.ModeAllPlusSubdirectories, types.ModeSubdirectoriesOnly:
		selection.Folders, listError = prompt.List(prompter, SubfolderPromptMessage)
	case types.ModeSpecificFiles:
		selection.Folders, listError = prompt.List(prompter, FolderListPromptMessage)
		if listError == nil {
			if len(selection.Folders) == 0 {
				selection.Folders = []string{types.CurrentFolderToken}
			}
			selection.FilePatterns, listError = prompt.List(prompter, PatternPromptMessage)
		}
	}
	if listError != nil {
		return types.Selection{}, fmt.Errorf(errorPromptFormat, "mode parameters", listError)
	}
	return selection, nil
}

// ParseMode converts operator input into a selection mode.
func ParseMode(answer string) (types.SelectionMode, error) {
	value, parseError := strconv.Atoi(answer)
	if parseError != nil {
		return 0, fmt.Errorf(errorModeFormat, ErrInvalidMode, answer)
	}
	mode := types.SelectionMode(value)
	if !mode.Valid() {
		return 0, fmt.Errorf(errorModeFormat, ErrInvalidMode, answer)
	}
	return mode, nil
}
