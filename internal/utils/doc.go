// Package utils exposes reusable helpers shared by the CLI commands.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// JMIGRATE_ environment variables through Viper. LoggerFactory builds zap
// loggers in console or structured form.
package utils
