package utils

const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".lister.yaml"
	// GlobalConfigFileName is the configuration file name inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the per-user configuration directory under the home directory.
	GlobalConfigDirectoryName = ".lister"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command failures.
	ApplicationExecutionFailedMessage = "lister failed"
)
