package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ReloadSource string

const (
	RELOAD_SOURCE_COMMAND = ReloadSource("command")
	RELOAD_SOURCE_HTTP    = ReloadSource("http")
	RELOAD_SOURCE_SIGNAL  = ReloadSource("signal")
)

// ReloadAudit is one reload request and whether it found a unit.
type ReloadAudit struct {
	bun.BaseModel `bun:"table:reload_audits"`

	ID        string       `bun:"id,pk"`                       // required
	Source    ReloadSource `bun:"source,notnull,type:varchar"` // required
	Actor     string       `bun:"actor"`                       // discord user id or remote addr
	Kind      string       `bun:"kind,notnull"`                // required
	UnitID    string       `bun:"unit_id"`                     // empty for a full reload
	OK        bool         `bun:"ok"`
	CreatedAt int64        `bun:"created_at,notnull"`
}

func (r *ReloadAudit) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case r.Source == "":
		return fmt.Errorf("(*ReloadAudit).Insert: source is blank")
	case r.Kind == "":
		return fmt.Errorf("(*ReloadAudit).Insert: kind is blank")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().UTC().Unix()
	}
	if _, err := db.NewInsert().
		Model(r).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*ReloadAudit).Insert: %w", err)
	}
	return nil
}

// RecentReloads returns the latest audits, newest first.
func RecentReloads(ctx context.Context, db bun.IDB, limit int) ([]ReloadAudit, error) {
	var audits []ReloadAudit
	if err := db.NewSelect().
		Model(&audits).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("RecentReloads: %w", err)
	}
	return audits, nil
}
