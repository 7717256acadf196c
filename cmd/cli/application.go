package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/verb/git-cfsync/internal/cfsync"
	"github.com/verb/git-cfsync/internal/utils"
	flagutils "github.com/verb/git-cfsync/internal/utils/flags"
)

const (
	applicationNameConstant                        = "git-cfsync"
	configFileFlagNameConstant                     = "config"
	configFileFlagUsageConstant                    = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                       = "log-level"
	logLevelFlagDescriptionConstant                = "Override the configured log level."
	logFormatFlagNameConstant                      = "log-format"
	logFormatFlagDescriptionConstant               = "Override the configured log format."
	commonConfigurationKeyConstant                 = "common"
	commonLogLevelConfigKeyConstant                = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant               = commonConfigurationKeyConstant + ".log_format"
	syncConfigurationKeyConstant                   = "sync"
	environmentPrefixConstant                      = "CFSYNC"
	configurationNameConstant                      = "config"
	configurationTypeConstant                      = "yaml"
	configurationInitializedMessageConstant        = "configuration initialized"
	configurationLogLevelFieldConstant             = "log_level"
	configurationLogFormatFieldConstant            = "log_format"
	configurationFileFieldConstant                 = "config_file"
	configurationLoadErrorTemplateConstant         = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant            = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                = "unable to flush logger: %w"
	synchronizationFailedMessageConstant           = "synchronization failed"
	defaultConfigurationSearchPathConstant         = "."
	configurationSearchPathEnvironmentNameConstant = "CFSYNC_CONFIG_SEARCH_PATH"
	versionFlagArgumentConstant                    = "--version"
	versionFlagShorthandArgumentConstant           = "-V"
	argumentTerminatorConstant                     = "--"
	versionOutputTemplateConstant                  = applicationNameConstant + " version: %s\n"
)

// applicationVersion is stamped through -ldflags at release build time.
var applicationVersion = "dev"

var (
	logLevelFlagUsageText = flagutils.FormatChoiceUsage(
		string(utils.LogLevelWarn),
		[]string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)},
		logLevelFlagDescriptionConstant,
	)
	logFormatFlagUsageText = flagutils.FormatChoiceUsage(
		string(utils.LogFormatStructured),
		[]string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
		logFormatFlagDescriptionConstant,
	)
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Sync   cfsync.CommandConfiguration    `mapstructure:"sync"`
}

// ApplicationCommonConfiguration stores logging configuration applied before command execution.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	executionFlags         flagutils.ExecutionFlagValues
	commandContextAccessor utils.CommandContextAccessor
	versionResolver        func(context.Context) string
	exitFunction           func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)

	embeddedConfigurationData, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationData, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		versionResolver: func(context.Context) string {
			return applicationVersion
		},
		exitFunction: os.Exit,
	}

	syncCommandBuilder := cfsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() cfsync.CommandConfiguration {
			return application.configuration.Sync
		},
	}
	rootCommand, rootCommandBuildError := syncCommandBuilder.Build()
	if rootCommandBuildError != nil {
		rootCommand = &cobra.Command{
			Use: applicationNameConstant,
			RunE: func(*cobra.Command, []string) error {
				return rootCommandBuildError
			},
		}
	}

	rootCommand.SilenceUsage = true
	rootCommand.SilenceErrors = true
	rootCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(command)
	}

	rootCommand.SetContext(context.Background())
	rootCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageText)
	rootCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageText)

	flagutils.BindExecutionFlags(rootCommand, flagutils.ExecutionDefaults{}, executionFlagDefinitions())

	application.rootCommand = rootCommand

	return application
}

// Execute resolves version requests, runs the root command, and ensures logger flushing.
func (application *Application) Execute() error {
	if application.handleVersionRequest(os.Args[1:]) {
		return nil
	}

	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(os.Args[1:]))

	executionError := application.rootCommand.Execute()
	if executionError != nil && application.executionFlags.Debug {
		application.logger.Error(synchronizationFailedMessageConstant, zap.Error(executionError))
	}

	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}

	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) handleVersionRequest(arguments []string) bool {
	for _, argument := range arguments {
		if argument == argumentTerminatorConstant {
			return false
		}
		if argument != versionFlagArgumentConstant && argument != versionFlagShorthandArgumentConstant {
			continue
		}

		fmt.Printf(versionOutputTemplateConstant, application.resolveVersion())
		application.exitFunction(0)
		return true
	}

	return false
}

func (application *Application) resolveVersion() string {
	if application.versionResolver == nil {
		return applicationVersion
	}
	return application.versionResolver(application.rootCommand.Context())
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range cfsync.DefaultConfigurationValues(syncConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	application.executionFlags = flagutils.ResolveExecutionFlags(command)
	if application.executionFlags.Verbose {
		application.configuration.Common.LogLevel = string(utils.LogLevelInfo)
	}
	if application.executionFlags.Debug {
		application.configuration.Common.LogLevel = string(utils.LogLevelDebug)
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}

	overridePath, overrideAvailable := os.LookupEnv(configurationSearchPathEnvironmentNameConstant)
	if !overrideAvailable {
		return searchPaths
	}

	trimmedOverridePath := strings.TrimSpace(overridePath)
	if len(trimmedOverridePath) == 0 {
		return searchPaths
	}

	return append([]string{trimmedOverridePath}, searchPaths...)
}

func executionFlagDefinitions() flagutils.ExecutionFlagDefinitions {
	return flagutils.ExecutionFlagDefinitions{
		Debug: flagutils.ExecutionFlagDefinition{
			Name:      flagutils.DebugFlagName,
			Usage:     flagutils.DebugFlagUsage,
			Shorthand: flagutils.DebugFlagShorthand,
			Enabled:   true,
		},
		Verbose: flagutils.ExecutionFlagDefinition{
			Name:      flagutils.VerboseFlagName,
			Usage:     flagutils.VerboseFlagUsage,
			Shorthand: flagutils.VerboseFlagShorthand,
			Enabled:   true,
		},
	}
}
