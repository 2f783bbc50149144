package logging_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/treemanifest/pkg/treemanifest/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logging.Level
		wantErr bool
	}{
		{"debug", logging.LevelDebug, false},
		{"DEBUG", logging.LevelDebug, false},
		{"info", logging.LevelInfo, false},
		{"", logging.LevelInfo, false},
		{"warn", logging.LevelWarn, false},
		{"warning", logging.LevelWarn, false},
		{"error", logging.LevelError, false},
		{"loud", logging.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, logging.ErrInvalidLevel) {
				t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	if got := logging.LevelWarn.String(); got != "warn" {
		t.Errorf("LevelWarn.String() = %q, want %q", got, "warn")
	}
	if got := logging.Level(42).String(); got != "unknown" {
		t.Errorf("Level(42).String() = %q, want %q", got, "unknown")
	}
}

func TestNew_SplitsSeverityStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer

	logger, err := logging.New(logging.Config{
		Level:  "debug",
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("debug line")
	logger.Info("info line", "file", "files.json")
	logger.Warn("warn line")
	logger.Error("error line")

	out := stdout.String()
	errOut := stderr.String()

	for _, want := range []string{"debug line", "info line", "files.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q: %s", want, out)
		}
	}
	for _, want := range []string{"warn line", "error line"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q: %s", want, errOut)
		}
		if strings.Contains(out, want) {
			t.Errorf("stdout unexpectedly contains %q", want)
		}
	}
}

func TestNew_Quiet(t *testing.T) {
	var stdout, stderr bytes.Buffer

	logger, err := logging.New(logging.Config{
		Level:  "info",
		Quiet:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "shown") {
		t.Errorf("stderr = %q, want warning", stderr.String())
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	var stdout bytes.Buffer

	logger, err := logging.New(logging.Config{Level: "info", Stdout: &stdout, Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("not shown")
	if strings.Contains(stdout.String(), "not shown") {
		t.Errorf("debug line written at info level: %s", stdout.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "verbose"})
	if !errors.Is(err, logging.ErrInvalidLevel) {
		t.Errorf("New() error = %v, want ErrInvalidLevel", err)
	}
}

func TestNew_InvalidRotationSize(t *testing.T) {
	_, err := logging.New(logging.Config{
		Path:     filepath.Join(t.TempDir(), "x.log"),
		Rotation: logging.RotationConfig{MaxSize: "lots"},
	})
	if err == nil {
		t.Fatal("New() error = nil, want error for invalid max size")
	}
}

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "treemanifest.log")

	logger, err := logging.New(logging.Config{
		Level:    "info",
		Path:     path,
		Rotation: logging.RotationConfig{MaxSize: "1MB", MaxBackups: 2},
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.With("component", "walker").Warn("skipping unsafe filename", "name", "bad;name")
	logger.Info("JSON manifest generated")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	for _, want := range []string{"skipping unsafe filename", "component=walker", "JSON manifest generated"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q:\n%s", want, content)
		}
	}
}

func TestDiscard(t *testing.T) {
	logger := logging.Discard()
	logger.Error("goes nowhere")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRecorder(t *testing.T) {
	r := logging.NewRecorder()
	r.Info("started")
	r.Warn("skipping unsafe filename", "name", "bad;name.txt")
	r.Error("error reading directory", "dir", "/x")

	if got := len(r.Entries()); got != 3 {
		t.Fatalf("len(Entries()) = %d, want 3", got)
	}
	if got := len(r.AtLevel(logging.LevelWarn)); got != 1 {
		t.Errorf("len(AtLevel(warn)) = %d, want 1", got)
	}
	if !r.Contains(logging.LevelWarn, "bad;name.txt") {
		t.Error("Contains(warn, bad;name.txt) = false, want true")
	}
	if r.Contains(logging.LevelInfo, "bad;name.txt") {
		t.Error("Contains(info, bad;name.txt) = true, want false")
	}
}
