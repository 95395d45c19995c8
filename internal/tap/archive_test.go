package tap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/epoch8/tap-cbr/internal/model"
	"github.com/epoch8/tap-cbr/internal/provider"
	"github.com/epoch8/tap-cbr/internal/saver"
)

func TestSyncArchivesEachDay(t *testing.T) {
	dir := t.TempDir()
	src := &stubSource{responses: map[string]stubResult{
		"2023-10-05": {snapshot: usdSnapshot()},
	}}
	d := newTestDriver(src, &memEmitter{})
	d.Archiver = &Archiver{Dir: dir, Saver: saver.JSONSaver{}}

	if _, err := d.Sync(context.Background(), day(t, "2023-10-05"), day(t, "2023-10-05"), nil); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "2023-10-05.json"))
	if err != nil {
		t.Fatalf("archive file: %v", err)
	}
	var rows []model.RateRow
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("parse archive: %v", err)
	}
	if len(rows) != 1 || rows[0].Code != "USD" || rows[0].Value != 99.4555 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestSyncWritesRunReport(t *testing.T) {
	dir := t.TempDir()
	src := &stubSource{responses: map[string]stubResult{
		"2023-10-05": {snapshot: usdSnapshot()},
		"2023-10-06": {err: provider.ErrExhausted},
	}}
	d := newTestDriver(src, &memEmitter{})
	d.Archiver = &Archiver{Dir: dir, Saver: saver.JSONSaver{}}

	if _, err := d.Sync(context.Background(), day(t, "2023-10-05"), day(t, "2023-10-07"), nil); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	var success []string
	data, err := os.ReadFile(filepath.Join(dir, ".lastrun.success.json"))
	if err != nil {
		t.Fatalf("success report: %v", err)
	}
	if err := json.Unmarshal(data, &success); err != nil {
		t.Fatal(err)
	}
	if len(success) != 1 || success[0] != "2023-10-05" {
		t.Errorf("success = %v", success)
	}

	var failed []skipEntry
	data, err = os.ReadFile(filepath.Join(dir, ".lastrun.failed.json"))
	if err != nil {
		t.Fatalf("failed report: %v", err)
	}
	if err := json.Unmarshal(data, &failed); err != nil {
		t.Fatal(err)
	}
	if len(failed) != 2 {
		t.Fatalf("failed = %+v", failed)
	}
	if failed[0].Date != "2023-10-06" || failed[0].Reason != "retries exhausted" {
		t.Errorf("failed[0] = %+v", failed[0])
	}
	if failed[1].Date != "2023-10-07" || failed[1].Reason != "no rate published" {
		t.Errorf("failed[1] = %+v", failed[1])
	}
}

func TestArchiverNilSafe(t *testing.T) {
	var a *Archiver
	a.SaveDay("2023-10-05", usdSnapshot()) // must not panic
}
