package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verb/git-cfsync/internal/execshell"
	"github.com/verb/git-cfsync/internal/gitrepo"
)

const (
	configSubcommandConstant                 = "config"
	getAllFlagConstant                       = "--get-all"
	newlineSeparatorConstant                 = "\n"
	executorNotConfiguredMessageConstant     = "git executor not configured"
	repositoryPathRequiredMessageConstant    = "repository path not provided"
	configurationLookupErrorTemplateConstant = "unable to read configuration key %s: %w"
)

var (
	// ErrExecutorNotConfigured indicates the reader was constructed without a git executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrRepositoryPathRequired indicates a load was attempted without a repository path.
	ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)
)

// Dependencies enumerates the collaborators required by Reader.
type Dependencies struct {
	GitExecutor gitrepo.GitExecutor
}

// Reader loads ordered synchronization targets from a repository's git configuration.
type Reader struct {
	gitExecutor gitrepo.GitExecutor
}

// NewReader validates the provided dependencies and constructs a Reader.
func NewReader(dependencies Dependencies) (*Reader, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrExecutorNotConfigured
	}

	return &Reader{gitExecutor: dependencies.GitExecutor}, nil
}

// SyncConfiguration captures the ordered targets configured for each category.
type SyncConfiguration struct {
	CategoryTargets map[Category][]string
}

// TargetsFor returns the ordered targets for the category and whether the category is configured.
func (configuration SyncConfiguration) TargetsFor(category Category) ([]string, bool) {
	targets, present := configuration.CategoryTargets[category]
	return targets, present
}

// ConfiguredCategories lists the configured categories preserving the supported category order.
func (configuration SyncConfiguration) ConfiguredCategories() []Category {
	configuredCategories := make([]Category, 0, len(configuration.CategoryTargets))
	for _, category := range ConfigurationCategories() {
		if _, present := configuration.CategoryTargets[category]; present {
			configuredCategories = append(configuredCategories, category)
		}
	}
	return configuredCategories
}

// Load queries the repository's git configuration for every supported category.
// A category whose key is not set is recorded as absent; only failures to run
// git at all surface as errors.
func (reader *Reader) Load(executionContext context.Context, repositoryPath string) (SyncConfiguration, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return SyncConfiguration{}, ErrRepositoryPathRequired
	}

	categoryTargets := make(map[Category][]string)
	for _, category := range ConfigurationCategories() {
		configuredTargets, categoryPresent, lookupError := reader.loadCategory(executionContext, trimmedRepositoryPath, category)
		if lookupError != nil {
			return SyncConfiguration{}, lookupError
		}
		if !categoryPresent {
			continue
		}
		categoryTargets[category] = configuredTargets
	}

	return SyncConfiguration{CategoryTargets: categoryTargets}, nil
}

func (reader *Reader) loadCategory(executionContext context.Context, repositoryPath string, category Category) ([]string, bool, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{configSubcommandConstant, getAllFlagConstant, category.ConfigurationKey()},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := reader.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(configurationLookupErrorTemplateConstant, category.ConfigurationKey(), executionError)
	}

	return parseConfigurationValues(executionResult.StandardOutput), true, nil
}

// parseConfigurationValues splits raw git config output into ordered values.
// Exactly one trailing newline is removed so an empty configured value
// survives as an empty string.
func parseConfigurationValues(standardOutput string) []string {
	trimmedOutput := strings.TrimSuffix(standardOutput, newlineSeparatorConstant)
	return strings.Split(trimmedOutput, newlineSeparatorConstant)
}
