package utils

import "os"

// IsDirectoryPath reports whether path resolves, following symbolic links, to a directory.
func IsDirectoryPath(path string) bool {
	info, statError := os.Stat(path)
	return statError == nil && info.IsDir()
}

// IsRegularFilePath reports whether path resolves, following symbolic links, to a regular file.
func IsRegularFilePath(path string) bool {
	info, statError := os.Stat(path)
	return statError == nil && info.Mode().IsRegular()
}
