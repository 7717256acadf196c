package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	integrationGitExecutableConstant  = "git"
	integrationBinaryNameConstant     = "git-cfsync"
	integrationBuildTimeout           = 60 * time.Second
	integrationCommandTimeout         = 10 * time.Second
	integrationCommitterNameConstant  = "Integration Test"
	integrationCommitterEmailConstant = "integration@example.com"
	integrationUpstreamDirectoryName  = "upstream"
	integrationCloneDirectoryName     = "clone"
)

func buildIntegrationBinary(testInstance *testing.T, repositoryRoot string) string {
	testInstance.Helper()

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)

	buildContext, cancelFunction := context.WithTimeout(context.Background(), integrationBuildTimeout)
	defer cancelFunction()

	buildCommand := exec.CommandContext(buildContext, "go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = repositoryRoot
	buildCommand.Env = os.Environ()

	outputBytes, buildError := buildCommand.CombinedOutput()
	if buildError != nil {
		testInstance.Fatalf("binary build failed: %v\n%s", buildError, string(outputBytes))
	}

	return binaryPath
}

func runBinaryIntegrationCommand(testInstance *testing.T, binaryPath string, workingDirectory string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) (string, error) {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), timeout)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = workingDirectory
	environment := append([]string{}, os.Environ()...)
	for overrideName, overrideValue := range environmentOverrides {
		environment = append(environment, overrideName+"="+overrideValue)
	}
	command.Env = environment

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func runGitCommand(testInstance *testing.T, repositoryPath string, arguments ...string) string {
	testInstance.Helper()

	gitArguments := append([]string{"-C", repositoryPath}, arguments...)
	command := exec.Command(integrationGitExecutableConstant, gitArguments...)
	command.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	outputBytes, runError := command.CombinedOutput()
	if runError != nil {
		testInstance.Fatalf("git %s failed: %v\n%s", strings.Join(arguments, " "), runError, string(outputBytes))
	}
	return string(outputBytes)
}

func initializeUpstreamRepository(testInstance *testing.T) string {
	testInstance.Helper()

	upstreamPath := filepath.Join(testInstance.TempDir(), integrationUpstreamDirectoryName)

	initCommand := exec.Command(integrationGitExecutableConstant, "init", "--initial-branch=main", upstreamPath)
	initCommand.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	outputBytes, initError := initCommand.CombinedOutput()
	if initError != nil {
		testInstance.Fatalf("git init failed: %v\n%s", initError, string(outputBytes))
	}

	configureCommitIdentity(testInstance, upstreamPath)
	commitFile(testInstance, upstreamPath, "README.md", "upstream\n", "initial commit")
	return upstreamPath
}

func cloneRepository(testInstance *testing.T, upstreamPath string) string {
	testInstance.Helper()

	clonePath := filepath.Join(testInstance.TempDir(), integrationCloneDirectoryName)

	cloneCommand := exec.Command(integrationGitExecutableConstant, "clone", upstreamPath, clonePath)
	cloneCommand.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	outputBytes, cloneError := cloneCommand.CombinedOutput()
	if cloneError != nil {
		testInstance.Fatalf("git clone failed: %v\n%s", cloneError, string(outputBytes))
	}

	configureCommitIdentity(testInstance, clonePath)
	return clonePath
}

func configureCommitIdentity(testInstance *testing.T, repositoryPath string) {
	testInstance.Helper()

	runGitCommand(testInstance, repositoryPath, "config", "user.name", integrationCommitterNameConstant)
	runGitCommand(testInstance, repositoryPath, "config", "user.email", integrationCommitterEmailConstant)
}

func commitFile(testInstance *testing.T, repositoryPath string, fileName string, fileContent string, commitMessage string) {
	testInstance.Helper()

	filePath := filepath.Join(repositoryPath, fileName)
	if writeError := os.WriteFile(filePath, []byte(fileContent), 0o644); writeError != nil {
		testInstance.Fatalf("unable to write %s: %v", filePath, writeError)
	}
	runGitCommand(testInstance, repositoryPath, "add", fileName)
	runGitCommand(testInstance, repositoryPath, "commit", "-m", commitMessage)
}

func headCommit(testInstance *testing.T, repositoryPath string) string {
	testInstance.Helper()

	return strings.TrimSpace(runGitCommand(testInstance, repositoryPath, "rev-parse", "HEAD"))
}
