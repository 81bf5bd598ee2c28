package utils

const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal error printed on exit.
	ApplicationExecutionFailedMessage = "ctxtree failed"
	// EnvironmentPrefix prefixes every environment variable read by the CLI.
	EnvironmentPrefix = "CTXTREE"
)
