package tap

import (
	"log/slog"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

type skipEntry struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// writeReport persists the per-run outcome lists next to the archive files:
// .lastrun.success.json with processed dates and .lastrun.failed.json with
// skipped dates and reasons. No-op when archiving is off.
func (d *Driver) writeReport(processed []string, skipped []skipEntry) {
	if d.Archiver == nil || d.Archiver.Dir == "" {
		return
	}
	dir := d.Archiver.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Warn("report: cannot create dir", "dir", dir, "error", err)
		return
	}
	if len(processed) > 0 {
		writeReportFile(filepath.Join(dir, ".lastrun.success.json"), processed, len(processed))
	}
	if len(skipped) > 0 {
		writeReportFile(filepath.Join(dir, ".lastrun.failed.json"), skipped, len(skipped))
	}
}

func writeReportFile(path string, v any, count int) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Warn("report: marshal error", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		slog.Warn("report: write error", "path", path, "error", err)
		return
	}
	slog.Info("report wrote", "path", path, "count", count)
}
