// Package gitrepo defines the executor contract for running git against a
// repository and resolves shell-backed defaults for commands that were not
// given an executor explicitly.
package gitrepo
