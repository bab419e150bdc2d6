package storage

import (
	"context"
	"errors"
	"strings"

	logx "stockpulse/pkg/logx"
)

// Store is the persistence API used by the app.
type Store interface {
	AppendDispatch(ctx context.Context, r DispatchRecord) error
	AppendReport(ctx context.Context, r ReportRecord) error
	RecentDispatches(ctx context.Context, limit int) ([]DispatchRecord, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if storage is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "off" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}
