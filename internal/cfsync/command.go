package cfsync

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verb/git-cfsync/internal/gitconfig"
	"github.com/verb/git-cfsync/internal/gitrepo"
	flagutils "github.com/verb/git-cfsync/internal/utils/flags"
)

const (
	commandUseConstant                   = "git-cfsync [repository-path]"
	commandShortDescriptionConstant      = "Run the git tasks configured under the cfsync configuration section"
	commandLongDescriptionConstant       = "git-cfsync reads the cfsync.fetch, cfsync.pull, and cfsync.merge keys from the repository's git configuration and runs the configured fetch, pull, and merge tasks in that fixed order, stopping at the first failure."
	missingRepositoryPathMessageConstant = "repository path is required; pass it as an argument or set sync.repository_path"
	syncCompletedMessageConstant         = "Synchronization completed"
	repositoryPathLogFieldConstant       = "repository_path"
	completedTaskCountLogFieldConstant   = "completed_tasks"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the synchronization command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration

	disableTerminalPromptFlagValue bool
}

// Build constructs the synchronization command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	flagutils.AddToggleFlag(
		command.Flags(),
		&builder.disableTerminalPromptFlagValue,
		flagutils.TerminalPromptFlagName,
		"",
		DefaultCommandConfiguration().DisableTerminalPrompt,
		flagutils.TerminalPromptFlagUsage,
	)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	repositoryPath := configuration.RepositoryPath
	if len(arguments) > 0 {
		repositoryPath = commandConfigurationRepositoryPathSanitizer.Sanitize(arguments[0])
	}
	if len(repositoryPath) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingRepositoryPathMessageConstant)
	}

	disableTerminalPrompt := configuration.DisableTerminalPrompt
	if command.Flags().Changed(flagutils.TerminalPromptFlagName) {
		disableTerminalPrompt = builder.disableTerminalPromptFlagValue
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := gitrepo.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	configurationReader, readerError := gitconfig.NewReader(gitconfig.Dependencies{GitExecutor: gitExecutor})
	if readerError != nil {
		return readerError
	}

	service, serviceCreationError := NewService(Dependencies{GitExecutor: gitExecutor, ConfigurationReader: configurationReader})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	result, runError := service.Run(command.Context(), Options{
		RepositoryPath:        repositoryPath,
		DisableTerminalPrompt: disableTerminalPrompt,
	})
	if runError != nil {
		return runError
	}

	logger.Info(
		syncCompletedMessageConstant,
		zap.String(repositoryPathLogFieldConstant, result.RepositoryPath),
		zap.Int(completedTaskCountLogFieldConstant, len(result.CompletedTasks)),
	)

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
