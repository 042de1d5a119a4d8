// Package ignore loads a project's .gitignore as an additional exclusion source.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/temirov/lister/internal/utils"
)

const (
	// GitIgnoreFileName is the ignore file read from the traversal root.
	GitIgnoreFileName = ".gitignore"

	errorStatGitIgnoreFormat  = "inspect %s: %w"
	errorParseGitIgnoreFormat = "parse %s: %w"
	errorAbsoluteRootFormat   = "getting absolute path for %s: %w"
	errorResolveRootFormat    = "resolving symbolic links in %s: %w"

	// MatcherLabel names the .gitignore rules in report preambles.
	MatcherLabel = ".gitignore rules"
)

// LoadRootGitIgnore parses <root>/.gitignore. It reports false when the file does not exist.
// Only the root file is read; nested .gitignore files are not consulted.
func LoadRootGitIgnore(root string) (utils.PathMatcher, bool, error) {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return nil, false, fmt.Errorf(errorAbsoluteRootFormat, root, absoluteError)
	}
	// Inventory paths are symlink-free, so the matcher base must be too.
	absoluteRoot, resolveError := filepath.EvalSymlinks(absoluteRoot)
	if resolveError != nil {
		return nil, false, fmt.Errorf(errorResolveRootFormat, root, resolveError)
	}
	gitIgnorePath := filepath.Join(absoluteRoot, GitIgnoreFileName)
	info, statError := os.Stat(gitIgnorePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(errorStatGitIgnoreFormat, gitIgnorePath, statError)
	}
	if info.IsDir() {
		return nil, false, nil
	}
	matcher, parseError := gitignore.NewGitIgnore(gitIgnorePath, absoluteRoot)
	if parseError != nil {
		return nil, false, fmt.Errorf(errorParseGitIgnoreFormat, gitIgnorePath, parseError)
	}
	return matcher, true, nil
}

// Apply extends exclusions with the root .gitignore when one exists.
func Apply(root string, exclusions utils.ExclusionSet) (utils.ExclusionSet, error) {
	matcher, found, loadError := LoadRootGitIgnore(root)
	if loadError != nil || !found {
		return exclusions, loadError
	}
	return exclusions.WithMatcher(matcher, MatcherLabel), nil
}
