package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect treemanifest configuration settings.

Configuration is loaded from:
  1. --config, if given
  2. $XDG_CONFIG_HOME/treemanifest/config.yaml
  3. ~/.config/treemanifest/config.yaml

Environment variables can override config file settings using the TREEMANIFEST_ prefix:
  TREEMANIFEST_BASE=/srv/downloads
  TREEMANIFEST_OUTPUT_FORMAT=yaml
  TREEMANIFEST_MAX_DEPTH=20`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources and the paths they resolve to.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path of the configuration file that would be read.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, paths, err := loadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out := cmd.OutOrStdout()

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fmt.Fprintf(out, "Config file: %s\n\n", configFile)
		} else {
			fmt.Fprintln(out, "Config file: (using defaults, no file found)")
			fmt.Fprintln(out)
		}
	} else {
		fmt.Fprintln(out, "Config file: (using defaults, no file found)")
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Current Configuration:")
	fmt.Fprintln(out, "----------------------")
	fmt.Fprintf(out, "base:                 %s\n", cfg.Base)
	fmt.Fprintf(out, "root:                 %s\n", cfg.Root)
	fmt.Fprintf(out, "max_depth:            %d\n", cfg.MaxDepth)
	fmt.Fprintf(out, "output.manifest:      %s\n", cfg.Output.Manifest)
	fmt.Fprintf(out, "output.list:          %s\n", cfg.Output.List)
	fmt.Fprintf(out, "output.format:        %s\n", cfg.Output.Format)
	fmt.Fprintf(out, "list.strip_prefix:    %s\n", cfg.List.StripPrefix)
	fmt.Fprintf(out, "logging.level:        %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "logging.path:         %s\n", cfg.Logging.Path)

	fmt.Fprintln(out, "\nResolved Paths:")
	fmt.Fprintln(out, "---------------")
	fmt.Fprintf(out, "base:                 %s\n", paths.Base)
	fmt.Fprintf(out, "scan root:            %s\n", paths.Root)
	fmt.Fprintf(out, "manifest:             %s\n", paths.Manifest)
	fmt.Fprintf(out, "list:                 %s\n", paths.List)
	fmt.Fprintf(out, "strip prefix:         %q\n", paths.StripPrefix)

	return nil
}

// runConfigPath shows the config file path.
func runConfigPath(cmd *cobra.Command, _ []string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
