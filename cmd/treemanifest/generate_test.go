package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/config"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/logging"
	"github.com/jamesainslie/treemanifest/pkg/treemanifest/output"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupBase creates base/files with the given files and returns the resolved paths.
func setupBase(t *testing.T, files ...string) config.Paths {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "files")
	require.NoError(t, os.MkdirAll(root, 0o755))
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}

	cfg := &config.Config{
		Base:   base,
		Root:   config.DefaultRoot,
		Output: config.OutputConfig{Manifest: config.DefaultManifestOutput, List: config.DefaultListOutput},
	}
	paths, err := cfg.Resolve()
	require.NoError(t, err)
	return paths
}

type manifestNode struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Path     string          `json:"path"`
	Children *[]manifestNode `json:"children"`
}

func TestGenerate_Scenario(t *testing.T) {
	paths := setupBase(t, "a.txt", "sub/b.txt", "sub/bad;name.txt")
	rec := logging.NewRecorder()

	err := generate(generateOptions{Paths: paths, Format: "json", Logger: rec})
	require.NoError(t, err)

	data, err := os.ReadFile(paths.Manifest)
	require.NoError(t, err)

	var nodes []manifestNode
	require.NoError(t, json.Unmarshal(data, &nodes))

	require.Len(t, nodes, 2)
	assert.Equal(t, "a.txt", nodes[0].Name)
	assert.Equal(t, "file", nodes[0].Type)
	assert.Equal(t, "files/a.txt", nodes[0].Path)
	assert.Nil(t, nodes[0].Children)

	sub := nodes[1]
	assert.Equal(t, "sub", sub.Name)
	assert.Equal(t, "directory", sub.Type)
	require.NotNil(t, sub.Children)
	require.Len(t, *sub.Children, 1)
	assert.Equal(t, "files/sub/b.txt", (*sub.Children)[0].Path)

	list, err := os.ReadFile(paths.List)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nsub/b.txt", string(list))

	assert.True(t, rec.Contains(logging.LevelWarn, "bad;name.txt"))
	assert.True(t, rec.Contains(logging.LevelInfo, "JSON manifest generated"))
	assert.True(t, rec.Contains(logging.LevelInfo, "File list generated"))
	assert.True(t, rec.Contains(logging.LevelInfo, "files.txt"))
}

func TestGenerate_UnreadableRootStillSucceeds(t *testing.T) {
	paths := setupBase(t)
	require.NoError(t, os.Remove(paths.Root))
	rec := logging.NewRecorder()

	err := generate(generateOptions{Paths: paths, Format: "json", Logger: rec})
	require.NoError(t, err)

	data, err := os.ReadFile(paths.Manifest)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	list, err := os.ReadFile(paths.List)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.True(t, rec.Contains(logging.LevelError, "error reading directory"))
}

func TestGenerate_ReadOnlyOutputFails(t *testing.T) {
	paths := setupBase(t, "a.txt")
	rec := logging.NewRecorder()

	err := generate(generateOptions{
		Paths:  paths,
		Format: "json",
		OutFs:  afero.NewReadOnlyFs(afero.NewOsFs()),
		Logger: rec,
	})
	require.Error(t, err)

	// The first write failed, so the list was never attempted.
	assert.Len(t, rec.AtLevel(logging.LevelError), 1)
	assert.True(t, rec.Contains(logging.LevelError, "failed to write JSON manifest"))
	assert.NoFileExists(t, paths.Manifest)
	assert.NoFileExists(t, paths.List)
}

func TestGenerate_YAML(t *testing.T) {
	paths := setupBase(t, "a.txt")
	paths.Manifest = filepath.Join(paths.Base, "files.yaml")
	rec := logging.NewRecorder()

	require.NoError(t, generate(generateOptions{Paths: paths, Format: "yaml", Logger: rec}))

	data, err := os.ReadFile(paths.Manifest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: files/a.txt")
	assert.True(t, rec.Contains(logging.LevelInfo, "YAML manifest generated"))
}

func TestGenerate_RejectsUnknownAndPrettyFormats(t *testing.T) {
	paths := setupBase(t)

	for _, format := range []string{"xml", "pretty"} {
		err := generate(generateOptions{Paths: paths, Format: format, Logger: logging.NewRecorder()})
		assert.True(t, errors.Is(err, output.ErrUnknownFormat), "format %q: %v", format, err)
	}
	assert.NoFileExists(t, paths.Manifest)
}

func TestGenerate_CustomStripPrefix(t *testing.T) {
	paths := setupBase(t, "a.txt")
	paths.StripPrefix = "nothing-matches/"

	require.NoError(t, generate(generateOptions{Paths: paths, Format: "json", Logger: logging.NewRecorder()}))

	list, err := os.ReadFile(paths.List)
	require.NoError(t, err)
	assert.Equal(t, "files/a.txt", string(list))
}

func TestLoadConfig(t *testing.T) {
	base := t.TempDir()
	cfgPath := filepath.Join(base, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("base: "+base+"\nroot: data\n"), 0o644))

	v := viper.New()
	config.ConfigureSearch(v, cfgPath)

	cfg, paths, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Root)
	assert.Equal(t, filepath.Join(base, "data"), paths.Root)
	assert.Equal(t, "data/", paths.StripPrefix)
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn"}}

	_, err := newLogger(cfg, true, true)
	require.NoError(t, err)

	cfg.Logging.Level = "shout"
	_, err = newLogger(cfg, false, false)
	assert.True(t, errors.Is(err, logging.ErrInvalidLevel))
}

func TestGenerate_ListIsByteOrdered(t *testing.T) {
	paths := setupBase(t, "h.txt", "c.txt", "sub/b.txt", "a.txt", "g.txt", "B.txt", "e.txt", "d.txt", "f.txt")

	require.NoError(t, generate(generateOptions{Paths: paths, Format: "json", Logger: logging.NewRecorder()}))

	list, err := os.ReadFile(paths.List)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"B.txt", "a.txt", "c.txt", "d.txt", "e.txt", "f.txt", "g.txt", "h.txt", "sub/b.txt",
	}, splitLines(string(list)))
}

func TestGenerate_SeparateWalkerLogger(t *testing.T) {
	paths := setupBase(t, "a.txt", "bad;name.txt")
	driverRec, walkerRec := logging.NewRecorder(), logging.NewRecorder()

	require.NoError(t, generate(generateOptions{
		Paths:        paths,
		Format:       "json",
		Logger:       driverRec,
		WalkerLogger: walkerRec,
	}))

	assert.True(t, walkerRec.Contains(logging.LevelWarn, "skipping unsafe filename"))
	assert.Empty(t, driverRec.AtLevel(logging.LevelWarn))
	assert.True(t, driverRec.Contains(logging.LevelInfo, "scan complete"))
	assert.True(t, driverRec.Contains(logging.LevelDebug, paths.Root))
}

func TestGenerate_NilLoggerDiscards(t *testing.T) {
	paths := setupBase(t, "a.txt")

	require.NoError(t, generate(generateOptions{Paths: paths, Format: "json"}))
	assert.FileExists(t, paths.List)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
