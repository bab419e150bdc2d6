package config

import (
	"strings"

	logx "stockpulse/pkg/logx"
)

// SummarizeChange returns a compact list of changed sections plus safe
// structured attrs for logging. The webhook URL carries a secret key, so it
// is never logged; only whether it changed.
func SummarizeChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 5)
	attrs := make([]logx.Field, 0, 12)

	if oldCfg.WeCom != newCfg.WeCom {
		changed = append(changed, "wecom")
		attrs = append(attrs,
			logx.Bool("wecom.webhook_changed", strings.TrimSpace(oldCfg.WeCom.WebhookURL) != strings.TrimSpace(newCfg.WeCom.WebhookURL)),
			logx.Int("wecom.chunk_budget", newCfg.WeCom.ChunkBudget),
			logx.Int("wecom.hard_limit", newCfg.WeCom.HardLimit),
			logx.String("wecom.pace_interval", newCfg.WeCom.PaceInterval),
		)
	}

	if oldCfg.Reports != newCfg.Reports {
		changed = append(changed, "reports")
		attrs = append(attrs,
			logx.String("reports.style", newCfg.Reports.Style),
			logx.Bool("reports.save_local", newCfg.Reports.SaveLocal),
		)
	}

	if oldCfg.Scheduler != newCfg.Scheduler {
		changed = append(changed, "scheduler")
		attrs = append(attrs,
			logx.Bool("scheduler.enabled", newCfg.Scheduler.Enabled),
			logx.String("scheduler.spec", newCfg.Scheduler.Spec),
		)
	}

	if derefStorage(oldCfg.Storage) != derefStorage(newCfg.Storage) {
		changed = append(changed, "storage")
		s := derefStorage(newCfg.Storage)
		attrs = append(attrs,
			logx.String("storage.driver", s.Driver),
			logx.Int("storage.keep_batches", s.KeepBatches),
		)
	}

	if oldCfg.Logging != newCfg.Logging {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("logx.level", newCfg.Logging.Level),
			logx.Bool("logx.console", newCfg.Logging.Console),
			logx.Bool("logx.file_enabled", newCfg.Logging.File.Enabled),
		)
	}

	return changed, attrs
}

func derefStorage(s *StorageConfig) StorageConfig {
	if s == nil {
		return StorageConfig{}
	}
	return *s
}
