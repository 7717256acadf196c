package flags

const (
	// DebugFlagName exposes the shared debug flag name.
	DebugFlagName = "debug"
	// DebugFlagShorthand provides the shorthand for the debug flag.
	DebugFlagShorthand = "d"
	// DebugFlagUsage describes the shared debug flag purpose.
	DebugFlagUsage = "Enable debug diagnostics and propagate failures with stack context"
	// VerboseFlagName exposes the shared verbose flag name.
	VerboseFlagName = "verbose"
	// VerboseFlagShorthand provides the shorthand for the verbose flag.
	VerboseFlagShorthand = "v"
	// VerboseFlagUsage describes the shared verbose flag purpose.
	VerboseFlagUsage = "Log every git invocation and its outcome"
	// TerminalPromptFlagName exposes the shared terminal prompt toggle flag name.
	TerminalPromptFlagName = "disable-terminal-prompt"
	// TerminalPromptFlagUsage describes the shared terminal prompt toggle flag purpose.
	TerminalPromptFlagUsage = "Disable interactive git credential prompts"
)
