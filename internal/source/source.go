package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jmylchreest/theme-sync/internal/config"
)

// Stream is a line-oriented sequence of preference readings.
// Next blocks until a line is available and returns io.EOF once the
// stream has ended.
type Stream interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// Subscriber opens a stream of preference changes.
type Subscriber interface {
	Subscribe(ctx context.Context) (Stream, error)
}

// Querier reads the current preference once.
type Querier interface {
	Query(ctx context.Context) (string, error)
}

// Source can both be watched and queried.
type Source interface {
	Subscriber
	Querier
}

// New returns the named preference source. An empty name selects gsettings.
func New(name string, logger *slog.Logger) (Source, error) {
	switch name {
	case "", config.SourceGSettings:
		return NewGSettings(logger), nil
	case config.SourcePortal:
		return NewPortal(logger), nil
	default:
		return nil, fmt.Errorf("unknown preference source %q: must be %s or %s",
			name, config.SourceGSettings, config.SourcePortal)
	}
}

// Lines is an in-memory Stream over a fixed set of lines.
type Lines struct {
	mu     sync.Mutex
	lines  []string
	closed bool
}

// NewLines creates a Stream that yields lines in order, then io.EOF.
func NewLines(lines ...string) *Lines {
	return &Lines{lines: lines}
}

// Next returns the next line.
func (l *Lines) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || len(l.lines) == 0 {
		return "", io.EOF
	}
	line := l.lines[0]
	l.lines = l.lines[1:]
	return line, nil
}

// Close ends the stream early.
func (l *Lines) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// Remaining returns the number of unread lines.
func (l *Lines) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0
	}
	return len(l.lines)
}

// Static is a Source backed by fixed data.
type Static struct {
	Lines []string
	Value string
	Err   error
}

// Subscribe returns a Lines stream over s.Lines.
func (s *Static) Subscribe(ctx context.Context) (Stream, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return NewLines(s.Lines...), nil
}

// Query returns s.Value.
func (s *Static) Query(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Value, nil
}
