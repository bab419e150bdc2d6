package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Config struct {
	WeCom     WeComConfig     `json:"wecom"`
	Reports   ReportsConfig   `json:"reports"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Logging   LoggingConfig   `json:"logging"`

	// Storage is optional; when omitted, dispatch history is not persisted.
	Storage *StorageConfig `json:"storage,omitempty"`
}

// WeComConfig controls the webhook transport and the chunking pipeline.
//
// All durations are Go duration strings (e.g. "500ms", "10s", "1m").
//
// Defaults (when fields are omitted/zero):
//   - chunk_budget: 2000
//   - hard_limit: 4096
//   - timeout: "10s"
//   - pace_interval: "1s"
type WeComConfig struct {
	WebhookURL  string `json:"webhook_url"`
	ChunkBudget int    `json:"chunk_budget,omitempty"`
	HardLimit   int    `json:"hard_limit,omitempty"`

	// Timeout bounds a single webhook POST. Use "0s" for the default.
	Timeout string `json:"timeout,omitempty"`

	// PaceInterval is the minimum spacing between consecutive sends.
	// Use "0s" to disable pacing.
	PaceInterval string `json:"pace_interval,omitempty"`
}

// ReportsConfig controls the report run: where the analyzer's results come
// from, which rendering style goes to the webhook, and whether the full
// report is also written to disk.
type ReportsConfig struct {
	ResultsPath string `json:"results_path"`

	// Style selects the webhook rendering: "daily", "dashboard" or "digest".
	Style string `json:"style,omitempty"`

	SaveLocal bool   `json:"save_local,omitempty"`
	Dir       string `json:"dir,omitempty"`
}

// SchedulerConfig controls the cron trigger for the daily run.
type SchedulerConfig struct {
	Enabled bool `json:"enabled"`

	// Spec is a cron expression or a descriptor like "@daily".
	Spec     string `json:"spec,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// StorageConfig controls the dispatch history database.
//
// Example:
//
//	"storage": { "driver": "sqlite", "path": "./stockpulse.db" }
type StorageConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string
	// KeepBatches caps the retained dispatch rows; 0 keeps everything.
	KeepBatches int `json:"keep_batches,omitempty"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Validate checks cross-field consistency. It is installed as the manager's
// validator so a bad edit never replaces a good running config.
func (c *Config) Validate() error {
	wc := strings.TrimSpace(c.WeCom.WebhookURL)
	if wc == "" {
		return fmt.Errorf("wecom.webhook_url is required")
	}
	u, err := url.Parse(wc)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("wecom.webhook_url: not an http(s) URL")
	}
	if c.WeCom.ChunkBudget < 0 || c.WeCom.HardLimit < 0 {
		return fmt.Errorf("wecom: chunk_budget and hard_limit must be >= 0")
	}
	if c.WeCom.ChunkBudget > 0 && c.WeCom.HardLimit > 0 && c.WeCom.ChunkBudget > c.WeCom.HardLimit {
		return fmt.Errorf("wecom: chunk_budget %d exceeds hard_limit %d", c.WeCom.ChunkBudget, c.WeCom.HardLimit)
	}
	if _, err := ParseDurationField("wecom.timeout", c.WeCom.Timeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("wecom.pace_interval", c.WeCom.PaceInterval); err != nil {
		return err
	}

	switch c.Reports.Style {
	case "", "daily", "dashboard", "digest":
	default:
		return fmt.Errorf("reports.style: unknown style %q", c.Reports.Style)
	}
	if c.Reports.SaveLocal && strings.TrimSpace(c.Reports.Dir) == "" {
		return fmt.Errorf("reports.dir is required when reports.save_local is set")
	}

	if c.Scheduler.Enabled && strings.TrimSpace(c.Scheduler.Spec) == "" {
		return fmt.Errorf("scheduler.spec is required when scheduler.enabled is set")
	}

	if s := c.Storage; s != nil {
		switch s.Driver {
		case "", "off":
		case "sqlite":
			if strings.TrimSpace(s.Path) == "" {
				return fmt.Errorf("storage.path is required for the sqlite driver")
			}
		default:
			return fmt.Errorf("storage.driver: unknown driver %q", s.Driver)
		}
		if _, err := ParseDurationField("storage.busy_timeout", s.BusyTimeout); err != nil {
			return err
		}
		if s.KeepBatches < 0 {
			return fmt.Errorf("storage.keep_batches must be >= 0")
		}
	}
	return nil
}
