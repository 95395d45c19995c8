package tap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/saver"
)

// Archiver persists fetched snapshots locally as long-format rate rows, one
// file per day ({date}.{ext}) under Dir. A nil Archiver disables archiving.
type Archiver struct {
	Dir   string
	Saver saver.RowSaver
}

// SaveDay writes the snapshot rows for one date. Failures are logged, never
// fatal; the archive is a side channel of the sync.
func (a *Archiver) SaveDay(date string, snapshot *model.DailyRates) {
	if a == nil || a.Saver == nil || a.Dir == "" {
		return
	}
	rows := snapshot.Rows(date)
	if len(rows) == 0 {
		return
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		slog.Warn("archive: cannot create dir", "dir", a.Dir, "error", err)
		return
	}
	path := filepath.Join(a.Dir, fmt.Sprintf("%s.%s", date, a.Saver.Extension()))
	if err := a.Saver.Save(rows, path); err != nil {
		slog.Warn("archive: failed to write", "path", path, "error", err)
		return
	}
	slog.Info("archive: saved", "path", path, "rows", len(rows))
}
