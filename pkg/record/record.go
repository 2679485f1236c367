// Package record turns lifecycle deliveries into self-describing records for
// analytics sinks.
package record

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Record describes one delivery of a lifecycle event.
type Record struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Scope     string    `json:"scope"`
	Event     string    `json:"event"`
	Args      []any     `json:"args,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds a record with a fresh ID and the current time.
func New(channel, scope, event string, args []any) Record {
	return Record{
		ID:        uuid.NewString(),
		Channel:   channel,
		Scope:     scope,
		Event:     event,
		Args:      args,
		Timestamp: time.Now().UTC(),
	}
}

// Recorder stores or forwards records.
type Recorder interface {
	Record(ctx context.Context, r Record) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, r Record) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, r Record) error {
	return f(ctx, r)
}

// LogRecorder writes each record as a structured log line.
type LogRecorder struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogRecorder logs records at Info level.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger, level: slog.LevelInfo}
}

// Record implements Recorder.
func (l *LogRecorder) Record(ctx context.Context, r Record) error {
	l.logger.Log(ctx, l.level, "lifecycle",
		"scope", r.Scope,
		"event", r.Event,
		"channel", r.Channel,
		"args", r.Args,
		"id", r.ID,
	)
	return nil
}
