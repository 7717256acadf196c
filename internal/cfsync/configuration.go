package cfsync

import (
	pathutils "github.com/verb/git-cfsync/internal/utils/path"
)

const (
	repositoryPathConfigurationKeyConstant        = "repository_path"
	disableTerminalPromptConfigurationKeyConstant = "disable_terminal_prompt"
	configurationKeySeparatorConstant             = "."
)

var commandConfigurationRepositoryPathSanitizer = pathutils.NewRepositoryPathSanitizer()

// CommandConfiguration captures persisted configuration for the synchronization command.
type CommandConfiguration struct {
	RepositoryPath        string `mapstructure:"repository_path"`
	DisableTerminalPrompt bool   `mapstructure:"disable_terminal_prompt"`
}

// DefaultCommandConfiguration returns baseline configuration values for synchronization.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryPath:        "",
		DisableTerminalPrompt: true,
	}
}

// DefaultConfigurationValues produces Viper defaults for the synchronization command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + repositoryPathConfigurationKeyConstant:        defaults.RepositoryPath,
		rootKey + configurationKeySeparatorConstant + disableTerminalPromptConfigurationKeyConstant: defaults.DisableTerminalPrompt,
	}
}

// Sanitize normalizes configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryPath = commandConfigurationRepositoryPathSanitizer.Sanitize(configuration.RepositoryPath)
	return sanitized
}
