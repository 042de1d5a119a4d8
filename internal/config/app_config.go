// Package config loads lister settings from global and local YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/lister/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the settings a run starts from.
type ApplicationConfiguration struct {
	Exclusions      []string           `mapstructure:"exclusions"`
	OutputDirectory string             `mapstructure:"output_directory"`
	InventoryFile   string             `mapstructure:"inventory_file"`
	GitIgnore       *bool              `mapstructure:"gitignore"`
	Tokens          TokenConfiguration `mapstructure:"tokens"`
	Clipboard       *bool              `mapstructure:"clipboard"`
}

// TokenConfiguration controls report token estimation.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global file and then overlays
// the local (or explicitly named) file.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if globalPath := GlobalConfigurationPath(); globalPath != "" {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if len(merged.Exclusions) > 0 {
		merged.Exclusions = utils.DeduplicatePatterns(merged.Exclusions)
	}
	return merged, nil
}

// GlobalConfigurationPath returns the per-user configuration file path, or "" without a home directory.
func GlobalConfigurationPath() string {
	homeDirectory, err := os.UserHomeDir()
	if err != nil || homeDirectory == "" {
		return ""
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if len(override.Exclusions) > 0 {
		result.Exclusions = append([]string{}, override.Exclusions...)
	}
	if override.OutputDirectory != "" {
		result.OutputDirectory = override.OutputDirectory
	}
	if override.InventoryFile != "" {
		result.InventoryFile = override.InventoryFile
	}
	if override.GitIgnore != nil {
		result.GitIgnore = cloneBool(override.GitIgnore)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// ExclusionSet returns the configured exclusions, or the defaults when none are configured.
func (config ApplicationConfiguration) ExclusionSet() utils.ExclusionSet {
	if len(config.Exclusions) == 0 {
		return utils.DefaultExclusionSet()
	}
	return utils.NewExclusionSet(config.Exclusions...)
}

// BoolValue dereferences value, returning fallback when unset.
func BoolValue(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
