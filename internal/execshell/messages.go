package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitConfigSubcommandNameConstant = "config"
	gitFetchSubcommandNameConstant  = "fetch"
	gitPullSubcommandNameConstant   = "pull"
	gitMergeSubcommandNameConstant  = "merge"
)

const (
	gitConfigLookupStartTemplateConstant            = "Reading configuration key %s in %s"
	gitConfigLookupSuccessTemplateConstant          = "Read configuration key %s in %s"
	gitConfigLookupFailureTemplateConstant          = "Configuration key %s is not set in %s (exit code %d%s)"
	gitConfigLookupExecutionFailureTemplateConstant = "Unable to read configuration key %s in %s: %s"
	gitFetchStartTemplateConstant                   = "Fetching %s in %s"
	gitFetchWithoutTargetStartTemplateConstant      = "Fetching from all remotes in %s"
	gitFetchSuccessTemplateConstant                 = "Fetched %s in %s"
	gitFetchWithoutTargetSuccessTemplateConstant    = "Fetched from all remotes in %s"
	gitFetchFailureTemplateConstant                 = "Failed to fetch %s in %s (exit code %d%s)"
	gitFetchWithoutTargetFailureTemplateConstant    = "Failed to fetch from all remotes in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant        = "Unable to fetch %s in %s: %s"
	gitFetchWithoutTargetExecutionFailureConstant   = "Unable to fetch from all remotes in %s: %s"
	gitPullStartTemplateConstant                    = "Pulling %s in %s"
	gitPullSuccessTemplateConstant                  = "Pulled %s in %s"
	gitPullFailureTemplateConstant                  = "Failed to pull %s in %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant         = "Unable to pull %s in %s: %s"
	gitMergeStartTemplateConstant                   = "Merging %s in %s"
	gitMergeSuccessTemplateConstant                 = "Merged %s in %s"
	gitMergeFailureTemplateConstant                 = "Failed to merge %s in %s (exit code %d%s)"
	gitMergeExecutionFailureTemplateConstant        = "Unable to merge %s in %s: %s"
)

// CommandMessageFormatter builds human-readable descriptions of command lifecycle stages.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that exited zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that exited non-zero.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing a command that could not run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// IsConfigurationLookup reports whether the command queries the git configuration store.
func (formatter CommandMessageFormatter) IsConfigurationLookup(command ShellCommand) bool {
	if command.Name != CommandGit {
		return false
	}
	return formatter.argumentAtIndex(command.Details.Arguments, 0) == gitConfigSubcommandNameConstant
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit {
		return formatter.describeGitMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch formatter.argumentAtIndex(command.Details.Arguments, 0) {
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitPullSubcommandNameConstant:
		return formatter.describeGitPullMessage(command, result, failure, stage)
	case gitMergeSubcommandNameConstant:
		return formatter.describeGitMergeMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	configurationKey := formatter.ensureValue(formatter.resolveConfigurationKey(command.Details.Arguments))
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigLookupStartTemplateConstant, configurationKey, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigLookupSuccessTemplateConstant, configurationKey, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigLookupFailureTemplateConstant, configurationKey, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitConfigLookupExecutionFailureTemplateConstant, configurationKey, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	target := formatter.resolveTaskTarget(command.Details.Arguments)
	workingDirectory := formatter.describeWorkingDirectory(command)

	if len(target) == 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitFetchWithoutTargetStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitFetchWithoutTargetSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitFetchWithoutTargetFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitFetchWithoutTargetExecutionFailureConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	resolvedTarget := formatter.ensureValue(target)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, resolvedTarget, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, resolvedTarget, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, resolvedTarget, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, resolvedTarget, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitPullMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	target := formatter.ensureValue(formatter.resolveTaskTarget(command.Details.Arguments))
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPullStartTemplateConstant, target, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPullSuccessTemplateConstant, target, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPullFailureTemplateConstant, target, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitPullExecutionFailureTemplateConstant, target, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitMergeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	target := formatter.ensureValue(formatter.resolveTaskTarget(command.Details.Arguments))
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitMergeStartTemplateConstant, target, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitMergeSuccessTemplateConstant, target, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitMergeFailureTemplateConstant, target, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitMergeExecutionFailureTemplateConstant, target, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// resolveConfigurationKey returns the last non-flag argument after the config subcommand.
func (formatter CommandMessageFormatter) resolveConfigurationKey(arguments []string) string {
	for argumentIndex := len(arguments) - 1; argumentIndex > 0; argumentIndex-- {
		if !strings.HasPrefix(arguments[argumentIndex], flagPrefixConstant) {
			return arguments[argumentIndex]
		}
	}
	return emptyStringConstant
}

// resolveTaskTarget returns the first non-flag argument after the subcommand.
func (formatter CommandMessageFormatter) resolveTaskTarget(arguments []string) string {
	for argumentIndex := 1; argumentIndex < len(arguments); argumentIndex++ {
		if !strings.HasPrefix(arguments[argumentIndex], flagPrefixConstant) {
			return arguments[argumentIndex]
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return arguments[index]
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}
