package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/config"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/logging"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/manifest"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/output"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/walker"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listDescription names the flat list in log lines.
const listDescription = "File list"

// generateOptions holds everything a single generate run needs.
type generateOptions struct {
	Paths    config.Paths
	Format   string
	MaxDepth int

	// ScanFs is read by the walker; OutFs receives the two result files.
	ScanFs afero.Fs
	OutFs  afero.Fs

	// Logger receives the writer's and driver's lines; WalkerLogger, if set,
	// receives the walker's. A nil Logger discards everything.
	Logger       walker.Logger
	WalkerLogger walker.Logger
}

// runGenerate is the root command handler.
func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, paths, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, viper.GetBool("verbose"), viper.GetBool("quiet"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	return generate(generateOptions{
		Paths:        paths,
		Format:       cfg.Output.Format,
		MaxDepth:     cfg.MaxDepth,
		Logger:       logger,
		WalkerLogger: logger.With("component", "walker"),
	})
}

// generate walks the scan root once, then writes the structured manifest and
// the flat file list. It returns at the first failed write.
func generate(opts generateOptions) error {
	formatter, err := output.Get(opts.Format)
	if err != nil || strings.EqualFold(opts.Format, "pretty") {
		return fmt.Errorf("%w: %q, available formats are %v", output.ErrUnknownFormat, opts.Format, manifestFormats())
	}

	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.WalkerLogger == nil {
		opts.WalkerLogger = opts.Logger
	}

	w, err := walker.New(walker.Options{
		Root:     opts.Paths.Root,
		Base:     opts.Paths.Base,
		MaxDepth: opts.MaxDepth,
		Fs:       opts.ScanFs,
		Logger:   opts.WalkerLogger,
	})
	if err != nil {
		return err
	}

	opts.Logger.Debug("scanning", "root", w.Root(), "base", opts.Paths.Base)
	start := time.Now()
	m := w.Walk()
	elapsed := time.Since(start)

	writer := output.NewWriter(opts.OutFs, opts.Logger)

	var buf bytes.Buffer
	if err := formatter.Format(&buf, m); err != nil {
		return fmt.Errorf("formatting manifest: %w", err)
	}
	if err := writer.Write(opts.Paths.Manifest, buf.Bytes(), manifestDescription(opts.Format)); err != nil {
		return err
	}

	buf.Reset()
	output.FormatList(&buf, manifest.StripPrefix(m.Flatten(), opts.Paths.StripPrefix))
	if err := writer.Write(opts.Paths.List, buf.Bytes(), listDescription); err != nil {
		return err
	}

	stats := w.Stats()
	opts.Logger.Info("scan complete",
		"dirs", humanize.Comma(int64(stats.Dirs)),
		"files", humanize.Comma(int64(stats.Files)),
		"skipped", humanize.Comma(int64(stats.Skipped)),
		"elapsed", elapsed.Round(time.Millisecond))
	return nil
}

// manifestDescription names the structured manifest in log lines, e.g. "JSON manifest".
func manifestDescription(format string) string {
	return strings.ToUpper(format) + " manifest"
}

// manifestFormats lists the formats suitable for a manifest file. The pretty
// tree is for terminals only.
func manifestFormats() []string {
	var formats []string
	for _, name := range output.Available() {
		if name != "pretty" {
			formats = append(formats, name)
		}
	}
	return formats
}
