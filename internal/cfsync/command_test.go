package cfsync_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verb/git-cfsync/internal/cfsync"
	"github.com/verb/git-cfsync/internal/execshell"
)

type recordingGitExecutor struct {
	invocationErrors  []error
	invocationResults []execshell.ExecutionResult
	recordedCommands  []execshell.CommandDetails
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)

	var invocationResult execshell.ExecutionResult
	if len(executor.invocationResults) > 0 {
		invocationResult = executor.invocationResults[0]
		executor.invocationResults = executor.invocationResults[1:]
	}

	var invocationError error
	if len(executor.invocationErrors) > 0 {
		invocationError = executor.invocationErrors[0]
		executor.invocationErrors = executor.invocationErrors[1:]
	}
	if invocationError != nil {
		return execshell.ExecutionResult{}, invocationError
	}
	return invocationResult, nil
}

func absentKeyFailure() error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1},
	}
}

func TestBuildReturnsCommand(t *testing.T) {
	builder := cfsync.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.IsType(t, &cobra.Command{}, command)
	require.NotNil(t, command.Flags().Lookup("disable-terminal-prompt"))
}

func TestCommandRejectsMultiplePositionalArguments(t *testing.T) {
	builder := cfsync.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{"/tmp/first", "/tmp/second"})

	require.Error(t, command.Execute())
}

func TestCommandRequiresRepositoryPath(t *testing.T) {
	executor := &recordingGitExecutor{}
	builder := cfsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() cfsync.CommandConfiguration {
			return cfsync.CommandConfiguration{}
		},
		GitExecutor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)

	require.Error(t, command.RunE(command, []string{}))
	require.Empty(t, executor.recordedCommands)
}

func TestCommandRunsConfiguredTasksFromPositionalArgument(t *testing.T) {
	temporaryRepository := t.TempDir()
	executor := &recordingGitExecutor{
		invocationResults: []execshell.ExecutionResult{
			{StandardOutput: "origin\n"},
		},
		invocationErrors: []error{nil, absentKeyFailure(), absentKeyFailure(), nil},
	}
	builder := cfsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	require.NoError(t, command.RunE(command, []string{temporaryRepository}))

	require.Len(t, executor.recordedCommands, 4)
	require.Equal(t, []string{"config", "--get-all", "cfsync.fetch"}, executor.recordedCommands[0].Arguments)
	require.Equal(t, []string{"config", "--get-all", "cfsync.merge"}, executor.recordedCommands[1].Arguments)
	require.Equal(t, []string{"config", "--get-all", "cfsync.pull"}, executor.recordedCommands[2].Arguments)
	require.Equal(t, []string{"fetch", "origin"}, executor.recordedCommands[3].Arguments)
	for _, commandDetails := range executor.recordedCommands {
		require.Equal(t, temporaryRepository, commandDetails.WorkingDirectory)
	}
	require.Equal(t, "0", executor.recordedCommands[3].EnvironmentVariables["GIT_TERMINAL_PROMPT"])
}

func TestCommandFallsBackToConfiguredRepositoryPath(t *testing.T) {
	temporaryRepository := t.TempDir()
	executor := &recordingGitExecutor{
		invocationErrors: []error{absentKeyFailure(), absentKeyFailure(), absentKeyFailure()},
	}
	builder := cfsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() cfsync.CommandConfiguration {
			return cfsync.CommandConfiguration{RepositoryPath: temporaryRepository + "/", DisableTerminalPrompt: true}
		},
		GitExecutor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	require.NoError(t, command.RunE(command, []string{}))

	require.Len(t, executor.recordedCommands, 3)
	for _, commandDetails := range executor.recordedCommands {
		require.Equal(t, temporaryRepository, commandDetails.WorkingDirectory)
	}
}

func TestCommandSurfacesTaskFailures(t *testing.T) {
	temporaryRepository := t.TempDir()
	executor := &recordingGitExecutor{
		invocationResults: []execshell.ExecutionResult{
			{StandardOutput: "origin\n"},
		},
		invocationErrors: []error{nil, absentKeyFailure(), absentKeyFailure(), absentKeyFailure()},
	}
	builder := cfsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	runError := command.RunE(command, []string{temporaryRepository})
	require.ErrorContains(t, runError, `failed to fetch "origin"`)
	require.Len(t, executor.recordedCommands, 4)
}

func TestCommandHonorsTerminalPromptToggle(t *testing.T) {
	temporaryRepository := t.TempDir()
	executor := &recordingGitExecutor{
		invocationResults: []execshell.ExecutionResult{
			{StandardOutput: "origin\n"},
		},
		invocationErrors: []error{nil, absentKeyFailure(), absentKeyFailure(), nil},
	}
	builder := cfsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	require.NoError(t, command.Flags().Set("disable-terminal-prompt", "no"))
	require.NoError(t, command.RunE(command, []string{temporaryRepository}))

	require.Len(t, executor.recordedCommands, 4)
	require.Nil(t, executor.recordedCommands[3].EnvironmentVariables)
}
