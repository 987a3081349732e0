package apply

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmylchreest/theme-sync/internal/config"
	"github.com/jmylchreest/theme-sync/internal/model"
)

// Applier switches configured applications to a requested theme.
// It is not safe for concurrent use against the same files.
type Applier struct {
	logger   *slog.Logger
	lookup   config.LookupFunc
	reloader Reloader
}

// Option configures an Applier.
type Option func(*Applier)

// WithLookup sets the environment lookup used to resolve the home directory.
func WithLookup(lookup config.LookupFunc) Option {
	return func(a *Applier) {
		a.lookup = lookup
	}
}

// WithReloader replaces the shell reloader.
func WithReloader(r Reloader) Option {
	return func(a *Applier) {
		a.reloader = r
	}
}

// NewApplier creates an Applier reading the process environment and running
// reload commands through bash.
func NewApplier(logger *slog.Logger, opts ...Option) *Applier {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Applier{
		logger:   logger,
		lookup:   os.LookupEnv,
		reloader: NewShellReloader(logger),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tokens returns the (from, to) pair that moves app towards pref.
func Tokens(app config.AppConfig, pref model.Preference) (from, to string) {
	if pref == model.Dark {
		return app.LightToken, app.DarkToken
	}
	return app.DarkToken, app.LightToken
}

// Apply switches a single application to pref. A failing reload command is
// logged and does not fail the apply.
func (a *Applier) Apply(ctx context.Context, app config.AppConfig, pref model.Preference) error {
	from, to := Tokens(app, pref)

	a.logger.Info("applying theme", "theme", pref.String(), "app", app.Name)

	home, err := config.HomeDir(a.lookup)
	if err != nil {
		return err
	}

	path := filepath.Join(home, app.Path)

	changed, err := substitute(a.logger, path, from, to)
	if err != nil {
		return fmt.Errorf("updating %s theme: %w", app.Name, err)
	}
	if !changed {
		a.logger.Debug("already up to date", "app", app.Name, "path", path)
	}

	if app.HasReload() {
		if err := a.reloader.Reload(ctx, app.ReloadCmd); err != nil {
			a.logger.Warn("failed to reload", "app", app.Name, "error", err)
		}
	}

	return nil
}

// ApplyAll applies pref to every app in order and stops at the first failure.
// Apps after the failing one are not attempted.
func (a *Applier) ApplyAll(ctx context.Context, pref model.Preference, apps []config.AppConfig) error {
	for _, app := range apps {
		if err := a.Apply(ctx, app, pref); err != nil {
			return err
		}
	}
	return nil
}
