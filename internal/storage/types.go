package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures the dispatch history store.
//
// Driver values:
//   - "sqlite": SQLite database file
//
// If Driver is empty or "off", storage is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // 0 means default
	// KeepBatches caps retained dispatch rows; 0 keeps everything.
	KeepBatches int
}

// DispatchRecord is one webhook dispatch batch.
// Keep it compact and schema-stable.
type DispatchRecord struct {
	At        time.Time
	Kind      string // "summary", "stock", "report", "alert"
	Segments  int
	Delivered int
	Failed    int
	OK        bool
	TookMS    int64
	Detail    string // first failure detail, if any
}

// ReportRecord is one report file written to disk.
type ReportRecord struct {
	At     time.Time
	Path   string
	Style  string
	Stocks int
	Bytes  int
}
