package utils

import (
	"context"
	"log/slog"
	"time"

	"cogbot/src-server/model"
)

// AuditReload stores a reload request. Failing to store it only logs, the
// reload itself already happened.
func (as *AppState) AuditReload(ctx context.Context, audit *model.ReloadAudit) {
	if as.BunDB == nil {
		return
	}
	start := time.Now()
	if err := audit.Insert(ctx, as.BunDB); err != nil {
		slog.Warn("can't store reload audit", "kind", audit.Kind, "id", audit.UnitID, "error", err)
		return
	}
	Observe(as.MetricChans.DatabaseWrite, start)
}
