// Package utils exposes reusable helpers consumed across the CLI.
//
// It currently houses the ConfigurationLoader and LoggerFactory abstractions
// that integrate Viper, environment variables, and zap logging.
package utils
