// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	Debug   bool
	Verbose bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	Debug   ExecutionFlagDefinition
	Verbose ExecutionFlagDefinition
}

// ExecutionFlagValues reports the resolved execution flag states for a command.
type ExecutionFlagValues struct {
	Debug   bool
	Verbose bool
}

// BindExecutionFlags attaches standardized execution flags to the provided command using persistent scope.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	persistentFlagSet := command.PersistentFlags()

	bindBoolFlag(persistentFlagSet, definitions.Debug, defaults.Debug)
	bindBoolFlag(persistentFlagSet, definitions.Verbose, defaults.Verbose)
}

// ResolveExecutionFlags reads execution flag values from the provided command.
func ResolveExecutionFlags(command *cobra.Command) ExecutionFlagValues {
	resolvedValues := ExecutionFlagValues{}
	if command == nil {
		return resolvedValues
	}

	resolvedValues.Debug = boolFlagValue(command, DebugFlagName)
	resolvedValues.Verbose = boolFlagValue(command, VerboseFlagName)
	return resolvedValues
}

func bindBoolFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	if len(definition.Shorthand) > 0 {
		flagSet.BoolP(definition.Name, definition.Shorthand, defaultValue, definition.Usage)
		return
	}

	flagSet.Bool(definition.Name, defaultValue, definition.Usage)
}

func boolFlagValue(command *cobra.Command, flagName string) bool {
	flagSets := []*pflag.FlagSet{command.Flags(), command.PersistentFlags(), command.InheritedFlags()}
	for _, flagSet := range flagSets {
		if flagSet == nil {
			continue
		}
		if flagSet.Lookup(flagName) == nil {
			continue
		}
		flagValue, parseError := flagSet.GetBool(flagName)
		if parseError != nil {
			return false
		}
		return flagValue
	}
	return false
}
