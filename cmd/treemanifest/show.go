package main

import (
	"bytes"
	"fmt"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/output"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/walker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showStyle string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the manifest without writing any files",
	Long: `Scan the configured root and print the manifest to stdout.

Styles:
  pretty   indented tree with a directory and file count (default)
  json     the same document written to files.json
  yaml     the manifest as YAML

Diagnostics still go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showStyle, "style", "s", "pretty", "output style (pretty, json, yaml)")
	rootCmd.AddCommand(showCmd)
}

// runShow prints the manifest to stdout.
func runShow(cmd *cobra.Command, _ []string) error {
	cfg, paths, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	// Info lines would interleave with the printed tree.
	logger, err := newLogger(cfg, viper.GetBool("verbose"), true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	formatter, err := output.Get(showStyle)
	if err != nil {
		return fmt.Errorf("%w: available styles are %v", err, output.Available())
	}

	w, err := walker.New(walker.Options{
		Root:     paths.Root,
		Base:     paths.Base,
		MaxDepth: cfg.MaxDepth,
		Logger:   logger.With("component", "walker"),
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, w.Walk()); err != nil {
		return fmt.Errorf("formatting manifest: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
