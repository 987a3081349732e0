package daemon

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/theme-sync/internal/config"
	"github.com/jmylchreest/theme-sync/internal/model"
	"github.com/jmylchreest/theme-sync/internal/source"
)

// ApplyOnce applies override when non-nil, otherwise queries q once and
// applies the normalized result.
func ApplyOnce(ctx context.Context, q source.Querier, applier Applier, apps []config.AppConfig, override *model.Preference, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var pref model.Preference
	if override != nil {
		pref = *override
		logger.Debug("using explicit theme", "theme", pref.String())
	} else {
		raw, err := q.Query(ctx)
		if err != nil {
			return err
		}
		pref = model.Normalize(raw)
		logger.Debug("queried preference", "raw", raw, "theme", pref.String())
	}

	return applier.ApplyAll(ctx, pref, apps)
}
