package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stockpulse/internal/config"
	"stockpulse/internal/report"
	"stockpulse/internal/services/dispatch"
	"stockpulse/internal/services/scheduler"
	"stockpulse/internal/storage"
	"stockpulse/internal/wecom"
	logx "stockpulse/pkg/logx"
)

// App wires config, logging, storage, the webhook client, the dispatcher
// and the scheduler into one lifecycle.
type App struct {
	manager *config.Manager
	logs    *logx.Service
	log     logx.Logger

	store storage.Store
	sched *scheduler.Service

	// mu guards the dispatcher, which is rebuilt on wecom config changes.
	mu         sync.Mutex
	dispatcher *dispatch.Service
}

// New loads and validates the config file and builds all services.
// The returned App is ready for Run or RunOnce.
func New(cfgPath string) (*App, error) {
	m := config.NewManager(cfgPath)
	m.SetValidator(func(_ context.Context, cfg *config.Config) error { return cfg.Validate() })

	cfg, err := m.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	logs, root := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	log := root.With(logx.String("svc", "app"))
	m.SetLogger(root.With(logx.String("svc", "config")))

	a := &App{manager: m, logs: logs, log: log}

	if cfg.Storage != nil {
		busy, _ := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
		st, err := storage.Open(storage.Config{
			Driver:      cfg.Storage.Driver,
			Path:        cfg.Storage.Path,
			BusyTimeout: busy,
			KeepBatches: cfg.Storage.KeepBatches,
		}, root.With(logx.String("svc", "storage")))
		if err != nil {
			logs.Close()
			return nil, fmt.Errorf("open storage: %w", err)
		}
		a.store = st
	}

	dispatcher, err := a.buildDispatcher(cfg)
	if err != nil {
		a.close()
		return nil, err
	}
	a.dispatcher = dispatcher

	a.sched = scheduler.New(scheduler.Config{
		Enabled:  cfg.Scheduler.Enabled,
		Spec:     cfg.Scheduler.Spec,
		Timezone: cfg.Scheduler.Timezone,
	}, root.With(logx.String("svc", "scheduler")))

	return a, nil
}

func (a *App) buildDispatcher(cfg *config.Config) (*dispatch.Service, error) {
	timeout, err := config.ParseDurationField("wecom.timeout", cfg.WeCom.Timeout)
	if err != nil {
		return nil, err
	}
	// An explicit "0s" disables pacing; only an omitted field gets the default.
	pace := time.Second
	if strings.TrimSpace(cfg.WeCom.PaceInterval) != "" {
		pace, err = config.ParseDurationField("wecom.pace_interval", cfg.WeCom.PaceInterval)
		if err != nil {
			return nil, err
		}
	}

	root := a.logs.Logger()
	client, err := wecom.New(wecom.Config{
		WebhookURL: cfg.WeCom.WebhookURL,
		Timeout:    timeout,
	}, nil, root.With(logx.String("svc", "wecom")))
	if err != nil {
		return nil, fmt.Errorf("build webhook client: %w", err)
	}

	return dispatch.New(dispatch.Config{
		ChunkBudget:  cfg.WeCom.ChunkBudget,
		HardLimit:    cfg.WeCom.HardLimit,
		PaceInterval: pace,
	}, client, root.With(logx.String("svc", "dispatch"))), nil
}

func (a *App) currentDispatcher() *dispatch.Service {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dispatcher
}

// Logger exposes the root app logger for main.
func (a *App) Logger() logx.Logger { return a.log }

// RunOnce executes a single report run and shuts down.
func (a *App) RunOnce(ctx context.Context) error {
	defer a.close()
	return a.runReport(ctx, time.Now())
}

// Run starts the daemon: scheduler plus config hot-reload. It blocks until
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	cfg := a.manager.Get()
	if cfg.Scheduler.Enabled {
		if err := a.sched.Add(scheduler.Job{Name: "daily-report", Run: func(jctx context.Context) error {
			return a.runReport(jctx, time.Now())
		}}); err != nil {
			return fmt.Errorf("register report job: %w", err)
		}
		if err := a.sched.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer a.sched.Stop()
	} else {
		a.log.Warn("scheduler disabled; daemon will only react to config changes")
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_ = a.manager.Watch(ctx)
	}()

	updates := a.manager.Subscribe(1)
	go func() {
		defer wg.Done()
		prev := cfg
		for {
			select {
			case <-ctx.Done():
				return
			case next, ok := <-updates:
				if !ok {
					return
				}
				a.applyConfig(prev, next)
				prev = next
			}
		}
	}()

	a.log.Info("daemon started")
	<-ctx.Done()
	a.manager.Unsubscribe(updates)
	wg.Wait()
	a.log.Info("daemon stopped")
	return nil
}

// applyConfig hot-swaps what can be swapped: log sinks, the dispatcher
// stack and the schedule. A storage driver change needs a restart.
func (a *App) applyConfig(oldCfg, newCfg *config.Config) {
	changed, attrs := config.SummarizeChange(oldCfg, newCfg)
	if len(changed) == 0 {
		return
	}
	a.log.Info("applying config change", append([]logx.Field{logx.Any("sections", changed)}, attrs...)...)

	for _, section := range changed {
		switch section {
		case "logging":
			a.logs.Apply(logx.Config{
				Level:   newCfg.Logging.Level,
				Console: newCfg.Logging.Console,
				File: logx.FileConfig{
					Enabled: newCfg.Logging.File.Enabled,
					Path:    newCfg.Logging.File.Path,
				},
			})
		case "wecom":
			d, err := a.buildDispatcher(newCfg)
			if err != nil {
				a.log.Warn("dispatcher rebuild failed; keeping previous", logx.Err(err))
				continue
			}
			a.mu.Lock()
			a.dispatcher = d
			a.mu.Unlock()
		case "scheduler":
			a.sched.Apply(scheduler.Config{
				Enabled:  newCfg.Scheduler.Enabled,
				Spec:     newCfg.Scheduler.Spec,
				Timezone: newCfg.Scheduler.Timezone,
			})
		case "storage":
			a.log.Warn("storage config changed; restart to apply")
		}
	}
}

func (a *App) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("storage close failed", logx.Err(err))
		}
		a.store = nil
	}
	if a.logs != nil {
		_ = a.logs.Close()
	}
}

// runReport is the full pipeline for one run: load analyzer results,
// render, optionally persist the report file, then dispatch to the webhook.
func (a *App) runReport(ctx context.Context, at time.Time) error {
	cfg := a.manager.Get()
	start := time.Now()

	results, err := report.LoadResults(cfg.Reports.ResultsPath)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	if len(results) == 0 {
		a.log.Warn("no analysis results; nothing to report",
			logx.String("path", cfg.Reports.ResultsPath))
		return nil
	}

	style := cfg.Reports.Style
	if style == "" {
		style = "daily"
	}
	a.log.Info("report run started",
		logx.String("style", style),
		logx.Int("stocks", len(results)))

	if cfg.Reports.SaveLocal {
		full := report.RenderDailyReport(results, at)
		path, err := report.Save(cfg.Reports.Dir, full, at)
		if err != nil {
			a.log.Warn("report save failed", logx.Err(err))
		} else {
			a.log.Info("report saved", logx.String("path", path))
			a.recordReport(ctx, storage.ReportRecord{
				At: at, Path: path, Style: style,
				Stocks: len(results), Bytes: len(full),
			})
		}
	}

	d := a.currentDispatcher()
	var failed bool
	switch style {
	case "dashboard":
		res := d.DispatchLong(ctx, report.RenderBatchSummary(results, at))
		a.recordDispatch(ctx, "summary", at, res, time.Since(start))
		failed = !res.OverallSuccess()

		msgs := make([]string, 0, len(results))
		for _, r := range report.SortByScore(results) {
			msgs = append(msgs, report.RenderStockMessage(r, at))
		}
		res = d.DispatchMany(ctx, msgs)
		a.recordDispatch(ctx, "stock", at, res, time.Since(start))
		failed = failed || !res.OverallSuccess()

	case "digest":
		res := d.DispatchLong(ctx, report.RenderDigest(results, at))
		a.recordDispatch(ctx, "digest", at, res, time.Since(start))
		failed = !res.OverallSuccess()

	default: // "daily"
		res := d.DispatchLong(ctx, report.RenderDailyReport(results, at))
		a.recordDispatch(ctx, "report", at, res, time.Since(start))
		failed = !res.OverallSuccess()
	}

	if failed {
		return fmt.Errorf("report run: some segments were not delivered")
	}
	a.log.Info("report run finished", logx.Duration("dur", time.Since(start)))
	return nil
}

func (a *App) recordDispatch(ctx context.Context, kind string, at time.Time, res dispatch.BatchResult, took time.Duration) {
	if a.store == nil {
		return
	}
	rec := storage.DispatchRecord{
		At:        at,
		Kind:      kind,
		Segments:  res.Total,
		Delivered: res.Delivered,
		Failed:    res.Failed(),
		OK:        res.OverallSuccess(),
		TookMS:    took.Milliseconds(),
	}
	if len(res.Failures) > 0 {
		rec.Detail = res.Failures[0].Outcome.String()
	}
	if err := a.store.AppendDispatch(ctx, rec); err != nil {
		a.log.Warn("dispatch history append failed", logx.Err(err))
	}
}

func (a *App) recordReport(ctx context.Context, rec storage.ReportRecord) {
	if a.store == nil {
		return
	}
	if err := a.store.AppendReport(ctx, rec); err != nil {
		a.log.Warn("report history append failed", logx.Err(err))
	}
}
