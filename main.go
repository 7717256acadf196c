package main

import (
	"fmt"
	"os"

	"github.com/verb/git-cfsync/cmd/cli"
)

const (
	exitErrorTemplateConstant = "Error: %v\n"
)

// main executes the git-cfsync command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
