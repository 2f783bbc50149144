// Package logging provides the human-readable logging channel for
// treemanifest. Debug and info lines go to stdout, warnings and errors go to
// stderr, and every line can additionally be written to a rotated log file.
//
// Basic usage:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Close()
//
//	logger.Warn("skipping unsafe filename", "name", name)
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// toCharmLevel converts our Level to charmbracelet/log level.
func (l Level) toCharmLevel() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level. The empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	// MaxSize is a human-readable size such as "10MB". Empty uses 10MB.
	MaxSize string

	// MaxAge is the number of days to retain old log files. Zero keeps them.
	MaxAge int

	// MaxBackups is the number of old log files to keep. Zero keeps all.
	MaxBackups int
}

// Config configures a Logger.
type Config struct {
	// Level is the minimum level written anywhere (debug, info, warn, error).
	Level string

	// Quiet suppresses debug and info on stdout. Warnings and errors still
	// reach stderr and the log file.
	Quiet bool

	// Path is an optional log file. Empty disables file output.
	Path string

	// Rotation configures rotation of the log file at Path.
	Rotation RotationConfig

	// Stdout and Stderr override the console streams. Nil uses os.Stdout
	// and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Logger writes to the two console severity streams and an optional file.
type Logger struct {
	out    *log.Logger // debug and info
	err    *log.Logger // warn and error
	file   *log.Logger // optional, every level
	closer io.Closer
}

// defaultMaxSizeMB is the rotation threshold when none is configured.
const defaultMaxSizeMB = 10

// New creates a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	outLevel := level
	if cfg.Quiet && outLevel < LevelWarn {
		outLevel = LevelWarn
	}

	l := &Logger{
		out: consoleLogger(stdout, outLevel),
		err: consoleLogger(stderr, level),
	}

	if cfg.Path != "" {
		maxSize, err := parseMaxSize(cfg.Rotation.MaxSize)
		if err != nil {
			return nil, err
		}
		writer := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    maxSize,
			MaxAge:     cfg.Rotation.MaxAge,
			MaxBackups: cfg.Rotation.MaxBackups,
		}
		l.file = log.NewWithOptions(writer, log.Options{
			Level:           level.toCharmLevel(),
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
		})
		l.closer = writer
	}

	return l, nil
}

// Discard returns a Logger that writes nowhere.
func Discard() *Logger {
	return &Logger{
		out: log.NewWithOptions(io.Discard, log.Options{}),
		err: log.NewWithOptions(io.Discard, log.Options{}),
	}
}

func consoleLogger(w io.Writer, level Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level.toCharmLevel(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// parseMaxSize converts a size string to whole megabytes for lumberjack.
func parseMaxSize(s string) (int, error) {
	if s == "" {
		return defaultMaxSizeMB, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parsing rotation max size %q: %w", s, err)
	}
	mb := int(n / humanize.MByte)
	if mb < 1 {
		mb = 1
	}
	return mb, nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	console := l.out
	if level >= LevelWarn {
		console = l.err
	}
	logTo(console, level, msg, args...)

	if l.file != nil {
		logTo(l.file, level, msg, args...)
	}
}

// logTo writes a log message to the given logger at the specified level.
func logTo(logger *log.Logger, level Level, msg string, args ...interface{}) {
	switch level {
	case LevelDebug:
		logger.Debug(msg, args...)
	case LevelInfo:
		logger.Info(msg, args...)
	case LevelWarn:
		logger.Warn(msg, args...)
	case LevelError:
		logger.Error(msg, args...)
	}
}

// With returns a new logger with additional context.
func (l *Logger) With(args ...interface{}) *Logger {
	newLogger := &Logger{
		out:    l.out.With(args...),
		err:    l.err.With(args...),
		closer: l.closer,
	}
	if l.file != nil {
		newLogger.file = l.file.With(args...)
	}
	return newLogger
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	if err := l.closer.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}
