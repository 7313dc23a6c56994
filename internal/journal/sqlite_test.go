package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/olivierh59500/particle-replay-go/internal/playback"
)

func TestJournalRecordsFrames(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "journal.sqlite")
	j, err := Open(ctx, path, "output/save")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	var _ playback.Recorder = j

	recs := []playback.FrameRecord{
		{Index: 0, ID: "iter00000", Status: playback.StatusExported, Particles: 3, Image: "img/img00000.png"},
		{Index: 1, ID: "iter00001", Status: playback.StatusSkipped, Err: errors.New("bad radii")},
		{Index: 2, ID: "iter00002", Status: playback.StatusRendered, Particles: 2},
	}
	for _, r := range recs {
		if err := j.Record(r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := j.Finish(ctx, nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	rows, err := j.Frames(ctx)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Image != "img/img00000.png" || rows[0].Particles != 3 || rows[0].Status != "exported" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Status != "skipped" || rows[1].Error != "bad radii" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
	if rows[2].RunID != j.RunID() {
		t.Fatalf("run id = %q", rows[2].RunID)
	}
}

func TestJournalRunsAreSeparate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.sqlite")
	a, err := Open(ctx, path, "r")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Record(playback.FrameRecord{Index: 0, ID: "iter0", Status: playback.StatusRendered}); err != nil {
		t.Fatal(err)
	}
	a.Close()

	b, err := Open(ctx, path, "r")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if a.RunID() == b.RunID() {
		t.Fatal("run ids collide")
	}
	rows, err := b.Frames(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("new run sees old frames: %+v", rows)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), "", "r"); err == nil {
		t.Fatal("empty path accepted")
	}
}
