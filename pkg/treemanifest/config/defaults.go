// Package config provides configuration management for treemanifest.
package config

// Default configuration values for treemanifest.
const (
	// DefaultRoot is the scan root, relative to the base directory.
	DefaultRoot = "files"

	// DefaultManifestOutput is the structured manifest file, relative to the base directory.
	DefaultManifestOutput = "files.json"

	// DefaultListOutput is the flat file list, relative to the base directory.
	DefaultListOutput = "files.txt"

	// DefaultFormat is the structured manifest format.
	DefaultFormat = "json"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultLogMaxSize is the default log rotation size.
	DefaultLogMaxSize = "10MB"

	// DefaultLogMaxAge is the default number of days to keep rotated logs.
	DefaultLogMaxAge = 30

	// DefaultLogMaxBackups is the default number of rotated logs to keep.
	DefaultLogMaxBackups = 5

	// EnvPrefix prefixes environment variable overrides (TREEMANIFEST_ROOT, ...).
	EnvPrefix = "TREEMANIFEST"

	// AppName names the configuration directory.
	AppName = "treemanifest"
)
