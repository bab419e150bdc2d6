package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Save persists a rendered report under dir as report_YYYYMMDD.md,
// creating the directory if needed. It returns the written path.
func Save(dir, content string, at time.Time) (string, error) {
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("report_%s.md", at.Format("20060102")))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return path, nil
}
