package cfsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verb/git-cfsync/internal/execshell"
	"github.com/verb/git-cfsync/internal/gitconfig"
	"github.com/verb/git-cfsync/internal/gitrepo"
)

const (
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	configurationReaderMissingMessageConstant   = "configuration reader not configured"
	configurationLoadFailureTemplateConstant    = "failed to load synchronization configuration: %w"
	taskFailureTemplateConstant                 = "failed to %s %q: %w"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// categoryExecutionOrder fixes the sequence tasks run in. Configured
// categories missing from a repository are skipped without reordering the
// remaining ones.
var categoryExecutionOrder = []gitconfig.Category{
	gitconfig.CategoryFetch,
	gitconfig.CategoryPull,
	gitconfig.CategoryMerge,
}

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrConfigurationReaderNotConfigured indicates the configuration reader dependency was missing.
var ErrConfigurationReaderNotConfigured = errors.New(configurationReaderMissingMessageConstant)

// ConfigurationReader loads the ordered synchronization targets declared by a repository.
type ConfigurationReader interface {
	Load(executionContext context.Context, repositoryPath string) (gitconfig.SyncConfiguration, error)
}

// Dependencies enumerates external collaborators required for synchronization runs.
type Dependencies struct {
	GitExecutor         gitrepo.GitExecutor
	ConfigurationReader ConfigurationReader
}

// Options configures a synchronization run.
type Options struct {
	RepositoryPath        string
	DisableTerminalPrompt bool
}

// TaskExecution records one completed git task.
type TaskExecution struct {
	Category gitconfig.Category
	Target   string
}

// Result captures the observable outcomes of a synchronization run.
type Result struct {
	RepositoryPath string
	CompletedTasks []TaskExecution
}

// Service coordinates synchronization runs through git.
type Service struct {
	executor            gitrepo.GitExecutor
	configurationReader ConfigurationReader
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.ConfigurationReader == nil {
		return nil, ErrConfigurationReaderNotConfigured
	}
	return &Service{executor: dependencies.GitExecutor, configurationReader: dependencies.ConfigurationReader}, nil
}

// Run loads the repository's synchronization configuration and executes every
// configured target in order. Each target runs as git <category> <target>
// with the target passed verbatim, empty values included. The first failing
// task aborts the run.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	syncConfiguration, loadError := service.configurationReader.Load(executionContext, trimmedRepositoryPath)
	if loadError != nil {
		return Result{}, fmt.Errorf(configurationLoadFailureTemplateConstant, loadError)
	}

	completedTasks := make([]TaskExecution, 0)
	for _, category := range categoryExecutionOrder {
		configuredTargets, categoryPresent := syncConfiguration.TargetsFor(category)
		if !categoryPresent {
			continue
		}
		for _, configuredTarget := range configuredTargets {
			taskError := service.executeTask(executionContext, trimmedRepositoryPath, category, configuredTarget, options.DisableTerminalPrompt)
			if taskError != nil {
				return Result{}, fmt.Errorf(taskFailureTemplateConstant, category, configuredTarget, taskError)
			}
			completedTasks = append(completedTasks, TaskExecution{Category: category, Target: configuredTarget})
		}
	}

	return Result{RepositoryPath: trimmedRepositoryPath, CompletedTasks: completedTasks}, nil
}

func (service *Service) executeTask(executionContext context.Context, repositoryPath string, category gitconfig.Category, target string, disableTerminalPrompt bool) error {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{string(category), target},
		WorkingDirectory: repositoryPath,
	}
	if disableTerminalPrompt {
		commandDetails.EnvironmentVariables = map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		}
	}

	_, executionError := service.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}
