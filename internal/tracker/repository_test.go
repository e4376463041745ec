package tracker

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "data", "tracker.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		t.Cleanup(func() { sqlDB.Close() })
	}
	return NewRepository(db)
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved := &Entry{
		Date:     "2024-01-01",
		Note:     "Standup done",
		Status:   StatusDone,
		Progress: 100,
	}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.FindByDate(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded == nil {
		t.Fatal("entry not found after save")
	}
	if loaded.Note != saved.Note {
		t.Errorf("note = %q, want %q", loaded.Note, saved.Note)
	}
	if loaded.Status != saved.Status {
		t.Errorf("status = %q, want %q", loaded.Status, saved.Status)
	}
	if loaded.Progress != saved.Progress {
		t.Errorf("progress = %d, want %d", loaded.Progress, saved.Progress)
	}
}

func TestRepositoryUpsertByDate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &Entry{Date: "2024-03-10", Note: "draft", Status: StatusInProgress, Progress: 30}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := &Entry{Date: "2024-03-10", Note: "final", Status: StatusDone, Progress: 100}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	dates, err := repo.ListDates(ctx)
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("expected one entry per date, got %d", len(dates))
	}

	loaded, err := repo.FindByDate(ctx, "2024-03-10")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded.Note != "final" || loaded.Status != StatusDone {
		t.Errorf("entry not updated: note=%q status=%q", loaded.Note, loaded.Status)
	}
}

func TestRepositorySaveIgnoresStaleID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &Entry{Date: "2024-04-01", Note: "keep me", Status: StatusDone, Progress: 100}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("first entry has no ID after save")
	}

	// An entry for a new date carrying another row's primary key must
	// insert a fresh row, not rewrite the existing one.
	second := &Entry{ID: first.ID, Date: "2024-04-02", Note: "new day", Status: StatusInProgress, Progress: 10}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("second entry reused primary key %d", first.ID)
	}

	kept, err := repo.FindByDate(ctx, "2024-04-01")
	if err != nil {
		t.Fatalf("find first: %v", err)
	}
	if kept == nil {
		t.Fatal("first date's row was destroyed")
	}
	if kept.Note != "keep me" || kept.Status != StatusDone || kept.Progress != 100 {
		t.Errorf("first date's row was modified: %+v", kept)
	}

	added, err := repo.FindByDate(ctx, "2024-04-02")
	if err != nil {
		t.Fatalf("find second: %v", err)
	}
	if added == nil || added.Note != "new day" {
		t.Errorf("second date's row missing or wrong: %+v", added)
	}
}

func TestRepositoryFindMissingDate(t *testing.T) {
	repo := newTestRepo(t)

	loaded, err := repo.FindByDate(context.Background(), "1999-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil for missing date, got %+v", loaded)
	}
}

func TestRepositoryListDatesOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2024-02-01", "2024-02-03", "2024-02-02"} {
		if err := repo.Save(ctx, &Entry{Date: date, Status: StatusNotStarted}); err != nil {
			t.Fatalf("save %s: %v", date, err)
		}
	}

	dates, err := repo.ListDates(ctx)
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	want := []string{"2024-02-03", "2024-02-02", "2024-02-01"}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}
