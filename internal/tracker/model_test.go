package tracker

import "testing"

func TestStatusValid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{name: "not started", status: StatusNotStarted, want: true},
		{name: "in progress", status: StatusInProgress, want: true},
		{name: "done", status: StatusDone, want: true},
		{name: "empty", status: Status(""), want: false},
		{name: "unknown", status: Status("paused"), want: false},
		{name: "label instead of value", status: Status("In progress"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampProgress(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero", in: 0, want: 0},
		{name: "mid", in: 55, want: 55},
		{name: "full", in: 100, want: 100},
		{name: "negative", in: -10, want: 0},
		{name: "over", in: 250, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampProgress(tt.in); got != tt.want {
				t.Errorf("ClampProgress(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name         string
		entry        Entry
		wantErr      bool
		wantProgress int
	}{
		{
			name:         "valid entry",
			entry:        Entry{Date: "2024-01-01", Status: StatusDone, Progress: 100},
			wantProgress: 100,
		},
		{
			name:         "progress clamped high",
			entry:        Entry{Date: "2024-06-15", Status: StatusInProgress, Progress: 140},
			wantProgress: 100,
		},
		{
			name:         "progress clamped low",
			entry:        Entry{Date: "2024-06-15", Status: StatusNotStarted, Progress: -5},
			wantProgress: 0,
		},
		{
			name:    "bad date",
			entry:   Entry{Date: "15.06.2024", Status: StatusDone},
			wantErr: true,
		},
		{
			name:    "bad status",
			entry:   Entry{Date: "2024-06-15", Status: Status("later")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.entry.Progress != tt.wantProgress {
				t.Errorf("progress = %d, want %d", tt.entry.Progress, tt.wantProgress)
			}
		})
	}
}

func TestStatusLabelRoundTrip(t *testing.T) {
	for _, s := range Statuses() {
		if got := StatusFromLabel(s.Label()); got != s {
			t.Errorf("StatusFromLabel(%q) = %q, want %q", s.Label(), got, s)
		}
	}
	if got := StatusFromLabel("nonsense"); got != StatusNotStarted {
		t.Errorf("unknown label mapped to %q, want %q", got, StatusNotStarted)
	}
}
