package logging

import (
	"strings"
	"sync"
)

// Entry is a single captured log line.
type Entry struct {
	Level   Level
	Message string
	Args    []interface{}
}

// Recorder captures log lines in memory so callers can assert on the
// diagnostics a component emitted. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Debug records a debug message.
func (r *Recorder) Debug(msg string, args ...interface{}) {
	r.add(LevelDebug, msg, args)
}

// Info records an info message.
func (r *Recorder) Info(msg string, args ...interface{}) {
	r.add(LevelInfo, msg, args)
}

// Warn records a warning message.
func (r *Recorder) Warn(msg string, args ...interface{}) {
	r.add(LevelWarn, msg, args)
}

// Error records an error message.
func (r *Recorder) Error(msg string, args ...interface{}) {
	r.add(LevelError, msg, args)
}

func (r *Recorder) add(level Level, msg string, args []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg, Args: args})
}

// Entries returns a copy of all recorded entries, oldest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Entry, len(r.entries))
	copy(result, r.entries)
	return result
}

// AtLevel returns the recorded entries with the given level.
func (r *Recorder) AtLevel(level Level) []Entry {
	var result []Entry
	for _, e := range r.Entries() {
		if e.Level == level {
			result = append(result, e)
		}
	}
	return result
}

// Contains reports whether an entry at level has a message containing substr
// or an argument whose string form contains it.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, e := range r.AtLevel(level) {
		if strings.Contains(e.Message, substr) {
			return true
		}
		for _, arg := range e.Args {
			if s, ok := arg.(string); ok && strings.Contains(s, substr) {
				return true
			}
		}
	}
	return false
}
