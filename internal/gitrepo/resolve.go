package gitrepo

import (
	"go.uber.org/zap"

	"github.com/verb/git-cfsync/internal/execshell"
	"github.com/verb/git-cfsync/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing GitExecutor, logger *zap.Logger, humanReadableLogging bool) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		eventLogger := ui.NewConsoleCommandEventLogger(logger)
		return execshell.NewObservedShellExecutor(logger, commandRunner, eventLogger)
	}

	return execshell.NewShellExecutor(logger, commandRunner)
}
