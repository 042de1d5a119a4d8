package utils

import (
	"path/filepath"
	"strings"
)

const exclusionNameSeparator = ", "

// DefaultExclusionNames lists the entry names omitted from every listing unless
// configuration replaces them.
var DefaultExclusionNames = []string{
	"package.json",
	"README.md",
	"yarn.lock",
	".gitignore",
	".env.example",
	"node_modules",
	GitDirectoryName,
}

// PathMatcher reports whether an absolute entry path is ignored.
type PathMatcher interface {
	Match(path string, isDir bool) bool
}

// ExclusionSet is an ordered set of literal entry names removed from every listing,
// optionally extended by a path matcher such as a parsed .gitignore.
// The zero value excludes nothing.
type ExclusionSet struct {
	names        []string
	lookup       map[string]struct{}
	matcher      PathMatcher
	matcherLabel string
}

// NewExclusionSet builds a set from names, trimming blanks and dropping duplicates.
func NewExclusionSet(names ...string) ExclusionSet {
	var trimmedNames []string
	for _, name := range names {
		trimmedName := strings.TrimSpace(name)
		if trimmedName == "" {
			continue
		}
		trimmedNames = append(trimmedNames, trimmedName)
	}
	uniqueNames := DeduplicatePatterns(trimmedNames)
	lookup := make(map[string]struct{}, len(uniqueNames))
	for _, name := range uniqueNames {
		lookup[name] = struct{}{}
	}
	return ExclusionSet{names: uniqueNames, lookup: lookup}
}

// DefaultExclusionSet returns the set built from DefaultExclusionNames.
func DefaultExclusionSet() ExclusionSet {
	return NewExclusionSet(DefaultExclusionNames...)
}

// With returns a new set holding the receiver's names followed by extraNames.
func (set ExclusionSet) With(extraNames ...string) ExclusionSet {
	combined := append(append([]string{}, set.names...), extraNames...)
	extended := NewExclusionSet(combined...)
	extended.matcher = set.matcher
	extended.matcherLabel = set.matcherLabel
	return extended
}

// WithMatcher returns a copy of the set that also excludes paths matched by matcher.
// label names the matcher's rules in Describe.
func (set ExclusionSet) WithMatcher(matcher PathMatcher, label string) ExclusionSet {
	set.matcher = matcher
	set.matcherLabel = label
	return set
}

// HasMatcher reports whether a path matcher extends the literal names.
func (set ExclusionSet) HasMatcher() bool {
	return set.matcher != nil
}

// Contains reports whether an entry with the given base name is excluded.
func (set ExclusionSet) Contains(name string) bool {
	_, excluded := set.lookup[name]
	return excluded
}

// Excludes reports whether the entry at entryPath is hidden, either by its base name
// or by the path matcher.
func (set ExclusionSet) Excludes(entryPath string, isDir bool) bool {
	if set.Contains(filepath.Base(entryPath)) {
		return true
	}
	return set.matcher != nil && set.matcher.Match(entryPath, isDir)
}

// Names returns the excluded names in insertion order.
func (set ExclusionSet) Names() []string {
	return append([]string{}, set.names...)
}

func (set ExclusionSet) String() string {
	return strings.Join(set.names, exclusionNameSeparator)
}

// Describe lists the excluded names followed by the matcher label, if a labelled matcher is set.
func (set ExclusionSet) Describe() string {
	if !set.HasMatcher() || set.matcherLabel == "" {
		return set.String()
	}
	return strings.Join(append(set.Names(), set.matcherLabel), exclusionNameSeparator)
}
