package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmylchreest/theme-sync/internal/config"
	"github.com/jmylchreest/theme-sync/internal/model"
	"github.com/jmylchreest/theme-sync/internal/source"
)

// Applier applies a preference across a set of applications.
type Applier interface {
	ApplyAll(ctx context.Context, pref model.Preference, apps []config.AppConfig) error
}

// Monitor applies every preference reading from a stream until the stream
// ends or an apply fails. Events are handled one at a time, in order.
type Monitor struct {
	logger     *slog.Logger
	subscriber source.Subscriber
	applier    Applier
	apps       []config.AppConfig

	handled int
}

// NewMonitor creates a Monitor.
func NewMonitor(sub source.Subscriber, applier Applier, apps []config.AppConfig, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		logger:     logger,
		subscriber: sub,
		applier:    applier,
		apps:       apps,
	}
}

// Handled returns the number of events applied so far.
func (m *Monitor) Handled() int {
	return m.handled
}

// Run subscribes to the preference source and applies each reading.
// It returns nil when the source ends, the first apply error otherwise,
// or ctx.Err() once ctx is cancelled. There is no resubscription.
func (m *Monitor) Run(ctx context.Context) error {
	stream, err := m.subscriber.Subscribe(ctx)
	if err != nil {
		return err
	}

	for {
		line, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = stream.Close()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}

		if err := m.handle(ctx, line); err != nil {
			_ = stream.Close()
			return err
		}
	}

	closeErr := stream.Close()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	m.logger.Info("preference source ended", "events", m.handled)

	if closeErr != nil {
		if model.KindOf(closeErr) == model.KindSubprocessExit {
			m.logger.Warn("preference source exited with error", "error", closeErr)
			return nil
		}
		return closeErr
	}
	return nil
}

// handle applies a single line read from the stream.
func (m *Monitor) handle(ctx context.Context, line string) error {
	event, err := model.NewEvent(line)
	if err != nil {
		return err
	}

	m.logger.Debug("preference event",
		"event", event.ID,
		"raw", event.Raw,
		"theme", event.Preference.String())

	if err := m.applier.ApplyAll(ctx, event.Preference, m.apps); err != nil {
		return fmt.Errorf("applying %s theme (event %s): %w", event.Preference, event.ID, err)
	}

	m.handled++
	return nil
}
