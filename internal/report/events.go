package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventIngest EventType = "ingest"
	EventSkip   EventType = "skip"
	EventError  EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event is one line of the ingest audit log
type Event struct {
	Timestamp time.Time  `json:"ts"`
	Level     EventLevel `json:"level"`
	Event     EventType  `json:"event"`
	FileHash  string     `json:"file_hash,omitempty"`
	AudioPath string     `json:"audio_path,omitempty"`
	ImgPath   string     `json:"img_path,omitempty"`
	Artist    string     `json:"artist,omitempty"`
	Title     string     `json:"title,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates an event logger writing to a timestamped file
// under outputDir. Events below minLevel are dropped.
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(outputDir, fmt.Sprintf("ingest-%s.jsonl", timestamp))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// NullLogger returns a logger that silently discards everything
func NullLogger() *EventLogger {
	return &EventLogger{}
}

// Path returns the log file path, or "" for a null logger
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogIngest logs a successfully cataloged file
func (l *EventLogger) LogIngest(hash, audioPath, imgPath, artist, title string) error {
	return l.Log(&Event{
		Level:     LevelInfo,
		Event:     EventIngest,
		FileHash:  hash,
		AudioPath: audioPath,
		ImgPath:   imgPath,
		Artist:    artist,
		Title:     title,
	})
}

// LogSkip logs a file left out of the catalog
func (l *EventLogger) LogSkip(audioPath, reason string) error {
	return l.Log(&Event{
		Level:     LevelDebug,
		Event:     EventSkip,
		AudioPath: audioPath,
		Reason:    reason,
	})
}

// LogError logs a file that failed to ingest
func (l *EventLogger) LogError(audioPath string, err error) error {
	return l.Log(&Event{
		Level:     LevelError,
		Event:     EventError,
		AudioPath: audioPath,
		Error:     err.Error(),
	})
}

// Close flushes and closes the log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
