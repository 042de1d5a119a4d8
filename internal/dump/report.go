package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/lister/internal/tokenizer"
	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

const (
	reportHeaderFormat   = "## %s\n\n"
	visualStructureLabel = "Visual Structure:\n"
	fileHeaderFormat     = "### %s\n\n"
	codeFence            = "```"

	errorReadFileFormat    = "read %s: %w"
	errorWriteReportFormat = "write report to %s: %w"
	errorRenderTreeFormat  = "render tree for %s: %w"
	errorCollectFormat     = "collect files under %s: %w"
)

// Dumper writes content reports for folders under Root.
type Dumper struct {
	Root            string
	OutputDirectory string
	Exclusions      utils.ExclusionSet
	Logger          *zap.Logger
	TokenCounter    tokenizer.Counter
	TokenModel      string
}

// Dump renders the report for folderPath under selection and writes it to the output
// directory. Files that are not text keep their section with a placeholder body; a file
// that cannot be read aborts the dump.
func (dumper Dumper) Dump(folderPath string, selection types.Selection) (types.Report, error) {
	logger := dumper.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	scopedTree, treeError := RenderScopedTree(folderPath, selection, dumper.Exclusions)
	if treeError != nil {
		return types.Report{}, fmt.Errorf(errorRenderTreeFormat, folderPath, treeError)
	}
	files, collectError := CollectFiles(folderPath, selection, dumper.Exclusions)
	if collectError != nil {
		return types.Report{}, fmt.Errorf(errorCollectFormat, folderPath, collectError)
	}
	logger.Debug("collected files", zap.String("folder", folderPath), zap.Stringer("mode", selection.Mode), zap.Int("count", len(files)))

	report := types.Report{}
	var builder strings.Builder
	fmt.Fprintf(&builder, reportHeaderFormat, ReportHeader(folderPath, dumper.Root))
	builder.WriteString(visualStructureLabel)
	builder.WriteString(scopedTree + "\n\n")
	for _, file := range files {
		fileBytes, readError := os.ReadFile(file.AbsolutePath)
		if readError != nil {
			return types.Report{}, fmt.Errorf(errorReadFileFormat, file.AbsolutePath, readError)
		}
		fmt.Fprintf(&builder, fileHeaderFormat, file.RelativePath)
		report.Files++
		if utils.IsBinary(fileBytes) {
			logger.Warn("skipping binary content", zap.String("path", file.RelativePath))
			report.BinaryFiles++
			writeFencedBlock(&builder, types.BinaryContentPlaceholder)
			continue
		}
		report.Bytes += int64(len(fileBytes))
		writeFencedBlock(&builder, string(fileBytes))
	}
	report.Content = builder.String()

	report.Path = filepath.Join(dumper.OutputDirectory, ReportFileName(folderPath, dumper.Root))
	if writeError := os.WriteFile(report.Path, []byte(report.Content), 0o644); writeError != nil {
		return types.Report{}, fmt.Errorf(errorWriteReportFormat, report.Path, writeError)
	}

	if dumper.TokenCounter != nil {
		countResult, countError := tokenizer.CountBytes(dumper.TokenCounter, []byte(report.Content))
		if countError != nil {
			logger.Warn("token estimation failed", zap.String("path", report.Path), zap.Error(countError))
		} else if countResult.Counted {
			report.Tokens = countResult.Tokens
			report.Model = dumper.TokenModel
		}
	}
	return report, nil
}

func writeFencedBlock(builder *strings.Builder, body string) {
	builder.WriteString(codeFence + "\n")
	builder.WriteString(body)
	builder.WriteString("\n" + codeFence + "\n\n")
}

// ReportFileName derives the report file name from folderPath's position under root.
func ReportFileName(folderPath string, root string) string {
	relativeFolder := utils.RelativePathOrSelf(folderPath, root)
	if relativeFolder == types.CurrentFolderToken {
		return types.RootReportFileName
	}
	return strings.ReplaceAll(relativeFolder, "/", "_") + types.ReportFileSuffix
}

// ReportHeader names the dumped folder as <project>/<relative folder>, or <project> for root.
func ReportHeader(folderPath string, root string) string {
	projectName := filepath.Base(filepath.Clean(root))
	relativeFolder := utils.RelativePathOrSelf(folderPath, root)
	if relativeFolder == types.CurrentFolderToken {
		return projectName
	}
	return projectName + "/" + relativeFolder
}
