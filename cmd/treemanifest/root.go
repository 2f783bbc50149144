package main

import (
	"fmt"
	"os"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/config"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "treemanifest",
		Short: "Describe a directory tree as a manifest and a flat file list",
		Long: `Treemanifest scans a directory tree and writes two files:

  files.json   nested manifest of directories and files with relative paths
  files.txt    one file path per line, relative to the scan root

Names containing shell metacharacters, hidden names and anything resolving
outside the scan root are left out and reported on stderr.

By default the scan root is "files" next to the executable and both outputs
are written beside it. Use --base to choose another reference directory.

Examples:
  treemanifest                        # Scan ./files next to the binary
  treemanifest --base /srv/downloads  # Scan /srv/downloads/files
  treemanifest -f yaml --manifest-out files.yaml
  treemanifest show                   # Print the tree without writing files
  treemanifest config show            # Show configuration`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/treemanifest/config.yaml)")
	rootCmd.PersistentFlags().StringP("base", "b", "", "reference directory for relative paths (default: executable directory)")
	rootCmd.PersistentFlags().StringP("root", "r", "", "scan root, relative to base (default: files)")
	rootCmd.PersistentFlags().IntP("max-depth", "d", 0, "maximum directory depth to list (0=unlimited)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to this file, rotated")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only report warnings and errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	rootCmd.Flags().StringP("format", "f", "", "manifest format (json, yaml)")
	rootCmd.Flags().String("manifest-out", "", "structured manifest output file (default: files.json)")
	rootCmd.Flags().String("list-out", "", "flat file list output file (default: files.txt)")
	rootCmd.Flags().String("strip-prefix", "", "prefix removed from listed paths (default: scan root name + /)")

	// Bind flags to viper
	_ = viper.BindPFlag("base", rootCmd.PersistentFlags().Lookup("base"))
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.path", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.format", rootCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.manifest", rootCmd.Flags().Lookup("manifest-out"))
	_ = viper.BindPFlag("output.list", rootCmd.Flags().Lookup("list-out"))
	_ = viper.BindPFlag("list.strip_prefix", rootCmd.Flags().Lookup("strip-prefix"))
}

// initConfig points viper at the config file and environment.
func initConfig() {
	config.ConfigureSearch(viper.GetViper(), cfgFile)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the configuration and resolves its paths.
func loadConfig(v *viper.Viper) (*config.Config, config.Paths, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, config.Paths{}, err
	}

	paths, err := cfg.Resolve()
	if err != nil {
		return nil, config.Paths{}, err
	}
	return cfg, paths, nil
}

// newLogger builds the logging channel from the configuration and the
// --verbose and --quiet flags.
func newLogger(cfg *config.Config, verbose, quiet bool) (*logging.Logger, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	return logging.New(logging.Config{
		Level: level,
		Quiet: quiet && !verbose,
		Path:  cfg.Logging.Path,
		Rotation: logging.RotationConfig{
			MaxSize:    cfg.Logging.Rotation.MaxSize,
			MaxAge:     cfg.Logging.Rotation.MaxAge,
			MaxBackups: cfg.Logging.Rotation.MaxBackups,
		},
	})
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
