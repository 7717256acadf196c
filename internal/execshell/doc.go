// Package execshell provides structured helpers for invoking the git binary.
//
// It wraps os/exec behind ShellExecutor, exposes OSCommandRunner for default
// process execution, and defines the command, result, and error types used
// throughout git-cfsync to run git synchronously in a testable manner.
package execshell
