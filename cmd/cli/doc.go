// Package cli constructs the git-cfsync command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging
// primitives. It exposes helpers to build reusable application instances
// and to execute the synchronization command as a reusable library.
package cli
