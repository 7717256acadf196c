// Package cfsync implements the synchronization command. It reads the
// ordered fetch, pull, and merge targets a repository declares under the
// cfsync git configuration section and runs the corresponding git tasks
// against that repository, stopping at the first failure.
package cfsync
