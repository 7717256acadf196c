package gitrepo

import (
	"context"

	"github.com/verb/git-cfsync/internal/execshell"
)

// GitExecutor executes git commands scoped to an explicit working directory.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
