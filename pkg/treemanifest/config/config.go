package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// OutputConfig names the two result files and the manifest format.
type OutputConfig struct {
	Manifest string `mapstructure:"manifest"`
	List     string `mapstructure:"list"`
	Format   string `mapstructure:"format"`
}

// ListConfig configures the flat file list.
type ListConfig struct {
	// StripPrefix is removed from the front of every listed path.
	// Empty means the scan root relative to the base, plus "/".
	StripPrefix string `mapstructure:"strip_prefix"`
}

// Config represents the application configuration.
type Config struct {
	// Base is the reference directory. Empty means the directory holding
	// the executable.
	Base     string        `mapstructure:"base"`
	Root     string        `mapstructure:"root"`
	MaxDepth int           `mapstructure:"max_depth"`
	Output   OutputConfig  `mapstructure:"output"`
	List     ListConfig    `mapstructure:"list"`
	Logging  LoggingConfig `mapstructure:"logging"`
}

// Paths holds the absolute locations a run reads and writes, derived from
// a Config.
type Paths struct {
	Base        string
	Root        string
	Manifest    string
	List        string
	StripPrefix string
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// SetDefaults registers every configuration key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base", "")
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("max_depth", 0)
	v.SetDefault("output.manifest", DefaultManifestOutput)
	v.SetDefault("output.list", DefaultListOutput)
	v.SetDefault("output.format", DefaultFormat)
	v.SetDefault("list.strip_prefix", "")
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.rotation.max_size", DefaultLogMaxSize)
	v.SetDefault("logging.rotation.max_age", DefaultLogMaxAge)
	v.SetDefault("logging.rotation.max_backups", DefaultLogMaxBackups)
}

// ConfigureSearch points v at cfgFile, or at config.yaml in the standard
// locations when cfgFile is empty, and enables environment overrides.
// Search locations (in order of precedence):
//   - $XDG_CONFIG_HOME/treemanifest/config.yaml
//   - $HOME/.config/treemanifest/config.yaml
//
// Environment variables are prefixed with TREEMANIFEST_ (e.g., TREEMANIFEST_OUTPUT_FORMAT).
func ConfigureSearch(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load applies defaults to v, reads its config file if one is found and
// unmarshals the result. A missing file in the search paths is not an error;
// a missing explicit file is.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that cannot be used.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root cannot be empty", ErrInvalidConfig)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth cannot be negative", ErrInvalidConfig)
	}
	if c.Output.Manifest == "" || c.Output.List == "" {
		return fmt.Errorf("%w: output paths cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// Resolve turns the configured locations into absolute paths. Relative
// root and output paths are taken relative to the base directory.
func (c *Config) Resolve() (Paths, error) {
	base := c.Base
	if base == "" {
		dir, err := ExecutableDir()
		if err != nil {
			return Paths{}, err
		}
		base = dir
	}

	base, err := absPath(base, "")
	if err != nil {
		return Paths{}, fmt.Errorf("resolving base: %w", err)
	}

	p := Paths{Base: base}
	if p.Root, err = absPath(c.Root, base); err != nil {
		return Paths{}, fmt.Errorf("resolving root: %w", err)
	}
	if p.Manifest, err = absPath(c.Output.Manifest, base); err != nil {
		return Paths{}, fmt.Errorf("resolving manifest output: %w", err)
	}
	if p.List, err = absPath(c.Output.List, base); err != nil {
		return Paths{}, fmt.Errorf("resolving list output: %w", err)
	}

	p.StripPrefix = c.List.StripPrefix
	if p.StripPrefix == "" {
		p.StripPrefix = DefaultStripPrefix(p.Base, p.Root)
	}
	return p, nil
}

// DefaultStripPrefix returns root relative to base in forward-slash form
// with a trailing "/", or "" when root is base.
func DefaultStripPrefix(base, root string) string {
	rel, err := filepath.Rel(base, root)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}

// absPath expands ~ and makes path absolute, joining relative paths onto dir
// when dir is set.
func absPath(path, dir string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if dir != "" && !filepath.IsAbs(expanded) {
		expanded = filepath.Join(dir, expanded)
	}
	return filepath.Abs(expanded)
}

// ExecutableDir returns the directory containing the running executable,
// with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// ExpandPath expands a leading ~ or ~/ to the user's home directory.
// Other users' homes (~name) are left unchanged.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// ConfigDir returns $XDG_CONFIG_HOME/treemanifest.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
