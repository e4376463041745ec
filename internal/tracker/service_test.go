package tracker

import (
	"context"
	"path/filepath"
	"testing"

	"workflow-toolbox/internal/logger"

	"github.com/rs/zerolog"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	log := logger.NewConsoleLogger(zerolog.Disabled)
	return NewService(NewRepository(db), log)
}

func TestServiceLoadOrCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	entry, err := svc.LoadOrCreate(ctx, "2024-05-20")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entry.ID != 0 {
		t.Errorf("blank entry should be unsaved, got id %d", entry.ID)
	}
	if entry.Status != StatusNotStarted || entry.Progress != 0 || entry.Note != "" {
		t.Errorf("blank entry not blank: %+v", entry)
	}

	entry.Note = "wrote the report"
	entry.Status = StatusInProgress
	entry.Progress = 60
	if err := svc.Save(ctx, entry); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := svc.LoadOrCreate(ctx, "2024-05-20")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.ID == 0 {
		t.Error("reloaded entry should be persisted")
	}
	if again.Note != "wrote the report" || again.Status != StatusInProgress || again.Progress != 60 {
		t.Errorf("reloaded entry differs: %+v", again)
	}
}

func TestServiceSaveRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(t)

	entry := &Entry{Date: "2024-05-21", Status: Status("someday")}
	if err := svc.Save(context.Background(), entry); err == nil {
		t.Error("expected error for invalid status, got nil")
	}
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		days    int
		want    string
		wantErr bool
	}{
		{name: "next day", date: "2024-01-01", days: 1, want: "2024-01-02"},
		{name: "previous day", date: "2024-01-01", days: -1, want: "2023-12-31"},
		{name: "month boundary", date: "2024-02-29", days: 1, want: "2024-03-01"},
		{name: "no shift", date: "2024-07-04", days: 0, want: "2024-07-04"},
		{name: "bad date", date: "yesterday", days: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShiftDate(tt.date, tt.days)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShiftDate(%q, %d) = %q, want %q", tt.date, tt.days, got, tt.want)
			}
		})
	}
}
