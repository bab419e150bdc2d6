package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	logx "stockpulse/pkg/logx"
)

func openTestStore(t *testing.T, cfg Config) Store {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "test.db")
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	st, err := Open(cfg, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestOpenDisabled(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{}, logx.Nop())
	if err != nil || st != nil {
		t.Fatalf("disabled storage: got %v, %v", st, err)
	}
	st, err = Open(Config{Driver: "off"}, logx.Nop())
	if err != nil || st != nil {
		t.Fatalf("driver off: got %v, %v", st, err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "postgres"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestAppendAndReadDispatches(t *testing.T) {
	t.Parallel()
	st := openTestStore(t, Config{})
	ctx := context.Background()

	recs := []DispatchRecord{
		{Kind: "summary", Segments: 1, Delivered: 1, OK: true, TookMS: 120},
		{Kind: "stock", Segments: 3, Delivered: 2, Failed: 1, OK: false, TookMS: 3100,
			Detail: "transport_failed: connection refused"},
	}
	for _, r := range recs {
		if err := st.AppendDispatch(ctx, r); err != nil {
			t.Fatalf("AppendDispatch: %v", err)
		}
	}

	got, err := st.RecentDispatches(ctx, 10)
	if err != nil {
		t.Fatalf("RecentDispatches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Kind != "stock" || got[0].Failed != 1 || got[0].OK {
		t.Fatalf("newest = %+v", got[0])
	}
	if got[0].Detail != "transport_failed: connection refused" {
		t.Fatalf("detail = %q", got[0].Detail)
	}
	if got[1].Kind != "summary" || !got[1].OK {
		t.Fatalf("oldest = %+v", got[1])
	}
	if got[0].At.IsZero() {
		t.Fatal("timestamp not round-tripped")
	}
}

func TestAppendReport(t *testing.T) {
	t.Parallel()
	st := openTestStore(t, Config{})
	err := st.AppendReport(context.Background(), ReportRecord{
		At: time.Now(), Path: "/reports/report_20260831.md",
		Style: "dashboard", Stocks: 5, Bytes: 8211,
	})
	if err != nil {
		t.Fatalf("AppendReport: %v", err)
	}
}

func TestPruneCapsRetainedRows(t *testing.T) {
	t.Parallel()
	st := openTestStore(t, Config{KeepBatches: 10}).(*sqliteStore)
	st.pruneEvery = 1 // prune on every append
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if err := st.AppendDispatch(ctx, DispatchRecord{Kind: "stock", Segments: 1, Delivered: 1, OK: true}); err != nil {
			t.Fatalf("AppendDispatch #%d: %v", i, err)
		}
	}

	got, err := st.RecentDispatches(ctx, 100)
	if err != nil {
		t.Fatalf("RecentDispatches: %v", err)
	}
	if len(got) > 10 {
		t.Fatalf("retained %d rows, want <= 10", len(got))
	}
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "persist.db")
	cfg := Config{Driver: "sqlite", Path: path, BusyTimeout: time.Second}

	st, err := Open(cfg, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.AppendDispatch(context.Background(), DispatchRecord{Kind: "report", Segments: 2, Delivered: 2, OK: true}); err != nil {
		t.Fatalf("AppendDispatch: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, err = Open(cfg, logx.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	got, err := st.RecentDispatches(context.Background(), 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("after reopen: %v rows, err %v", len(got), err)
	}
}
