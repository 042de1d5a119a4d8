package dump_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/lister/internal/dump"
	"github.com/temirov/lister/internal/types"
	"github.com/temirov/lister/internal/utils"
)

// writeFixture creates files under root; paths ending in "/" become empty directories.
func writeFixture(t *testing.T, root string, entries map[string]string) {
	t.Helper()
	for relativePath, content := range entries {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if strings.HasSuffix(relativePath, "/") {
			if err := os.MkdirAll(fullPath, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", fullPath, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", fullPath, err)
		}
	}
}

func relativePaths(entries []types.FileEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.RelativePath)
	}
	return paths
}

// projectFixture is shared by the selection tests.
var projectFixture = map[string]string{
	"a.txt":                   "a",
	"z.go":                    "package z",
	"package.json":            "{}",
	"sub/b.txt":               "b",
	"sub/src/deep.txt":        "deep",
	"src/main.go":             "package main",
	"src/lib/util.go":         "package lib",
	"src/lib/src/nested.go":   "package src",
	"node_modules/ignored.js": "ignored",
	"src/node_modules/x/y.js": "ignored",
	"docs/guide.md":           "guide",
	"docs/README.md":          "excluded",
	"docs/notes.txt":          "notes",
	"empty/":                  "",
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, projectFixture)

	testCases := []struct {
		name      string
		selection types.Selection
		expected  []string
	}{
		{
			name:      "mode 1 empty allow-list",
			selection: types.Selection{Mode: types.ModeAllPlusSubdirectories},
			expected: []string{
				"a.txt", "z.go",
				"docs/guide.md", "docs/notes.txt",
				"src/main.go", "src/lib/util.go", "src/lib/src/nested.go",
				"sub/b.txt", "sub/src/deep.txt",
			},
		},
		{
			name:      "mode 2 empty allow-list selects every subfolder",
			selection: types.Selection{Mode: types.ModeSubdirectoriesOnly},
			expected: []string{
				"docs/guide.md", "docs/notes.txt",
				"src/main.go", "src/lib/util.go", "src/lib/src/nested.go",
				"sub/b.txt", "sub/src/deep.txt",
			},
		},
		{
			name:      "mode 1 filters every depth by own name",
			selection: types.Selection{Mode: types.ModeAllPlusSubdirectories, Folders: []string{"src"}},
			expected:  []string{"a.txt", "z.go", "src/main.go", "src/lib/src/nested.go", "sub/src/deep.txt"},
		},
		{
			name:      "mode 2 allow-list",
			selection: types.Selection{Mode: types.ModeSubdirectoriesOnly, Folders: []string{"lib", "docs"}},
			expected:  []string{"docs/guide.md", "docs/notes.txt", "src/lib/util.go"},
		},
		{
			name:      "mode 3 patterns in root",
			selection: types.Selection{Mode: types.ModeSpecificFiles, FilePatterns: []string{"*.go", "a.txt"}},
			expected:  []string{"a.txt", "z.go"},
		},
		{
			name:      "mode 3 listed folders",
			selection: types.Selection{Mode: types.ModeSpecificFiles, Folders: []string{"src/lib", "missing", ".", "docs"}, FilePatterns: []string{"*.go", "*.md"}},
			expected:  []string{"src/lib/util.go", "z.go", "docs/guide.md"},
		},
		{
			name:      "mode 3 empty patterns",
			selection: types.Selection{Mode: types.ModeSpecificFiles, Folders: []string{".", "src"}},
			expected:  nil,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			entries, err := dump.CollectFiles(root, testCase.selection, utils.DefaultExclusionSet())
			if err != nil {
				t.Fatalf("CollectFiles error: %v", err)
			}
			actual := relativePaths(entries)
			if strings.Join(actual, "|") != strings.Join(testCase.expected, "|") {
				t.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
			for _, entry := range entries {
				if entry.AbsolutePath != filepath.Join(root, filepath.FromSlash(entry.RelativePath)) {
					t.Fatalf("entry %s has absolute path %s", entry.RelativePath, entry.AbsolutePath)
				}
			}
		})
	}
}

func TestCollectFilesRejectsUnknownMode(t *testing.T) {
	root := t.TempDir()
	if _, err := dump.CollectFiles(root, types.Selection{Mode: 4}, utils.DefaultExclusionSet()); !errors.Is(err, dump.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestCollectFilesMatchesShellPatterns(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"a.go":        "package a",
		"b.go":        "package b",
		"!x.go":       "package x",
		"[draft].txt": "draft",
		"[a-.md":      "open range",
		"notes.txt":   "notes",
		"sub/deep.go": "package sub",
	})

	testCases := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{name: "bang negates a class", patterns: []string{"[!a]*.go"}, expected: []string{"!x.go", "b.go"}},
		{name: "unclosed bracket is literal", patterns: []string{"[*.txt"}, expected: []string{"[draft].txt"}},
		{name: "unclosed range is literal", patterns: []string{"[a-.md"}, expected: []string{"[a-.md"}},
		{name: "closed class matches one character", patterns: []string{"[ab].go"}, expected: []string{"a.go", "b.go"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			selection := types.Selection{Mode: types.ModeSpecificFiles, FilePatterns: testCase.patterns}
			entries, err := dump.CollectFiles(root, selection, utils.DefaultExclusionSet())
			if err != nil {
				t.Fatalf("CollectFiles error: %v", err)
			}
			actual := relativePaths(entries)
			if strings.Join(actual, "|") != strings.Join(testCase.expected, "|") {
				t.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}

func TestMatchName(t *testing.T) {
	testCases := []struct {
		pattern  string
		name     string
		expected bool
	}{
		{pattern: "*.go", name: "main.go", expected: true},
		{pattern: "*.go", name: "main.go.txt", expected: false},
		{pattern: "*", name: "", expected: true},
		{pattern: "?.txt", name: "a.txt", expected: true},
		{pattern: "?.txt", name: ".txt", expected: false},
		{pattern: "a*b*c", name: "aXbYc", expected: true},
		{pattern: "a*b*c", name: "aXbY", expected: false},
		{pattern: "[!a]*", name: "abc", expected: false},
		{pattern: "[!a]*", name: "bcd", expected: true},
		{pattern: "[^a]*", name: "^x", expected: true},
		{pattern: "[^a]*", name: "bcd", expected: false},
		{pattern: "[a-c].md", name: "b.md", expected: true},
		{pattern: "[a-c].md", name: "d.md", expected: false},
		{pattern: "[-x]", name: "-", expected: true},
		{pattern: "[]]", name: "]", expected: true},
		{pattern: "[!]]", name: "]", expected: false},
		{pattern: "[", name: "[", expected: true},
		{pattern: "[a-", name: "[a-", expected: true},
		{pattern: "[a-", name: "a", expected: false},
		{pattern: "\\*", name: "\\x", expected: true},
		{pattern: "héllo?", name: "héllo!", expected: true},
	}
	for _, testCase := range testCases {
		if actual := dump.MatchName(testCase.pattern, testCase.name); actual != testCase.expected {
			t.Fatalf("MatchName(%q, %q) = %v, expected %v", testCase.pattern, testCase.name, actual, testCase.expected)
		}
	}
}

func TestRenderScopedTree(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"a.txt":         "a",
		"lib/x.go":      "x",
		"src/main.go":   "main",
		"src/util/u.go": "u",
		"zz.txt":        "zz",
		"README.md":     "excluded",
	})
	base := filepath.Base(root)

	testCases := []struct {
		name      string
		selection types.Selection
		expected  []string
	}{
		{
			name:      "mode 1 everything",
			selection: types.Selection{Mode: types.ModeAllPlusSubdirectories},
			expected: []string{
				base,
				"├── a.txt",
				"├── lib",
				"│   └── x.go",
				"├── src",
				"│   ├── main.go",
				"│   └── util",
				"│       └── u.go",
				"└── zz.txt",
			},
		},
		{
			name:      "mode 2 allow-list uses terminal connector on last shown entry",
			selection: types.Selection{Mode: types.ModeSubdirectoriesOnly, Folders: []string{"lib"}},
			expected: []string{
				base,
				"└── lib",
				"    └── x.go",
			},
		},
		{
			name:      "mode 2 empty allow-list lists every subfolder instead of none",
			selection: types.Selection{Mode: types.ModeSubdirectoriesOnly},
			expected: []string{
				base,
				"├── lib",
				"│   └── x.go",
				"└── src",
				"    ├── main.go",
				"    └── util",
				"        └── u.go",
			},
		},
		{
			name:      "mode 3 root only",
			selection: types.Selection{Mode: types.ModeSpecificFiles, Folders: []string{"."}, FilePatterns: []string{"*.txt"}},
			expected:  []string{base},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			tree, err := dump.RenderScopedTree(root, testCase.selection, utils.DefaultExclusionSet())
			if err != nil {
				t.Fatalf("RenderScopedTree error: %v", err)
			}
			expected := strings.Join(testCase.expected, "\n")
			if tree != expected {
				t.Fatalf("unexpected tree:\n%s\nexpected:\n%s", tree, expected)
			}
		})
	}
}

func TestReportNaming(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "project")
	testCases := []struct {
		name           string
		folder         string
		expectedFile   string
		expectedHeader string
	}{
		{name: "root", folder: root, expectedFile: "root_contents.txt", expectedHeader: "project"},
		{name: "nested", folder: filepath.Join(root, "frontend", "src"), expectedFile: "frontend_src_contents.txt", expectedHeader: "project/frontend/src"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := dump.ReportFileName(testCase.folder, root); actual != testCase.expectedFile {
				t.Fatalf("expected file %s, got %s", testCase.expectedFile, actual)
			}
			if actual := dump.ReportHeader(testCase.folder, root); actual != testCase.expectedHeader {
				t.Fatalf("expected header %s, got %s", testCase.expectedHeader, actual)
			}
		})
	}
}

func TestDumpWritesReport(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"a.txt":                   "alpha",
		"sub/b.txt":               "beta",
		"node_modules/ignored.js": "ignored",
	})
	outputDirectory := t.TempDir()
	dumper := dump.Dumper{Root: root, OutputDirectory: outputDirectory, Exclusions: utils.DefaultExclusionSet()}

	report, err := dumper.Dump(root, types.Selection{Mode: types.ModeAllPlusSubdirectories})
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	if report.Path != filepath.Join(outputDirectory, types.RootReportFileName) {
		t.Fatalf("unexpected report path %s", report.Path)
	}
	base := filepath.Base(root)
	expected := "## " + base + "\n\n" +
		"Visual Structure:\n" +
		base + "\n├── a.txt\n└── sub\n    └── b.txt\n\n" +
		"### a.txt\n\n```\nalpha\n```\n\n" +
		"### sub/b.txt\n\n```\nbeta\n```\n\n"
	written, readErr := os.ReadFile(report.Path)
	if readErr != nil {
		t.Fatalf("read report: %v", readErr)
	}
	if string(written) != expected {
		t.Fatalf("unexpected report:\n%s\nexpected:\n%s", string(written), expected)
	}
	if report.Content != expected {
		t.Fatalf("report content differs from written file")
	}
	if strings.Contains(report.Content, "ignored.js") {
		t.Fatalf("excluded directory leaked into report")
	}
	if report.Files != 2 || report.BinaryFiles != 0 || report.Bytes != int64(len("alpha")+len("beta")) {
		t.Fatalf("unexpected counts %+v", report)
	}
}

func TestDumpKeepsBinarySections(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"a.bin":  "\xff\xfe\x00",
		"b.txt":  "after",
		"sub/c/": "",
	})
	dumper := dump.Dumper{Root: root, OutputDirectory: t.TempDir(), Exclusions: utils.DefaultExclusionSet()}

	report, err := dumper.Dump(root, types.Selection{Mode: types.ModeSpecificFiles, FilePatterns: []string{"*"}})
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	binarySection := "### a.bin\n\n```\n" + types.BinaryContentPlaceholder + "\n```\n\n"
	if !strings.Contains(report.Content, binarySection) {
		t.Fatalf("missing binary placeholder section:\n%s", report.Content)
	}
	if !strings.Contains(report.Content, "### b.txt\n\n```\nafter\n```\n\n") {
		t.Fatalf("file after binary content missing:\n%s", report.Content)
	}
	if report.Files != 2 || report.BinaryFiles != 1 {
		t.Fatalf("unexpected counts %+v", report)
	}
}

type fixedCounter struct{}

func (fixedCounter) Name() string { return "fixed" }

func (fixedCounter) CountString(input string) (int, error) { return 42, nil }

func TestDumpEstimatesTokens(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{"a.txt": "alpha"})
	dumper := dump.Dumper{
		Root:            root,
		OutputDirectory: t.TempDir(),
		Exclusions:      utils.DefaultExclusionSet(),
		TokenCounter:    fixedCounter{},
		TokenModel:      "gpt-4o",
	}
	report, err := dumper.Dump(root, types.Selection{Mode: types.ModeAllPlusSubdirectories})
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	if report.Tokens != 42 || report.Model != "gpt-4o" {
		t.Fatalf("unexpected token estimate %+v", report)
	}
}

func TestDumpFailsWhenOutputDirectoryIsMissing(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{"a.txt": "alpha"})
	dumper := dump.Dumper{Root: root, OutputDirectory: filepath.Join(root, "missing"), Exclusions: utils.DefaultExclusionSet()}
	if _, err := dumper.Dump(root, types.Selection{Mode: types.ModeAllPlusSubdirectories}); err == nil {
		t.Fatalf("expected write error")
	}
}
