package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/lister/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `# Entry names omitted from every listing. A non-empty list replaces the defaults.
exclusions:
  - package.json
  - README.md
  - yarn.lock
  - .gitignore
  - .env.example
  - node_modules
  - .git
# Directory receiving the inventory and content reports (default: working directory).
output_directory: ""
inventory_file: directory_inventory.txt
# Also hide entries matched by the root .gitignore.
gitignore: false
tokens:
  enabled: false
  model: gpt-4o
clipboard: false
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration template to the requested
// target and returns its path. An existing file is only replaced when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, resolveError := initDestination(options)
	if resolveError != nil {
		return "", resolveError
	}
	if err := os.MkdirAll(filepath.Dir(destinationPath), 0o755); err != nil {
		return "", fmt.Errorf("create configuration directory %s: %w", filepath.Dir(destinationPath), err)
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !options.Force {
		openFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	file, openError := os.OpenFile(destinationPath, openFlags, 0o600)
	if openError != nil {
		if errors.Is(openError, fs.ErrExist) {
			return "", fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", destinationPath)
		}
		return "", fmt.Errorf("open configuration %s: %w", destinationPath, openError)
	}
	_, writeError := file.WriteString(defaultConfigurationTemplate)
	closeError := file.Close()
	if writeError = errors.Join(writeError, closeError); writeError != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeError)
	}
	return destinationPath, nil
}

func initDestination(options InitOptions) (string, error) {
	switch options.Target {
	case InitTargetGlobal:
		globalPath := GlobalConfigurationPath()
		if globalPath == "" {
			return "", errors.New("resolve home directory for configuration")
		}
		return globalPath, nil
	case InitTargetLocal, "":
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
