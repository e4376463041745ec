package tracker

import (
	"fmt"
	"time"
)

// Status enumerates the tracked states of a day.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists all valid statuses in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusDone}
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable form shown in the UI.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// StatusFromLabel is the inverse of Label. Unknown labels map to
// StatusNotStarted.
func StatusFromLabel(label string) Status {
	for _, s := range Statuses() {
		if s.Label() == label {
			return s
		}
	}
	return StatusNotStarted
}

// DateLayout is the calendar-date key format for entries.
const DateLayout = "2006-01-02"

// Entry is one day's tracked note, status and progress.
type Entry struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"uniqueIndex;size:10"`
	Note      string
	Status    Status `gorm:"size:16;default:not_started"`
	Progress  int    `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEntry returns a blank entry for the given date.
func NewEntry(date string) *Entry {
	return &Entry{
		Date:   date,
		Status: StatusNotStarted,
	}
}

// ClampProgress pulls a progress percentage into [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Validate checks the entry before it is persisted. Progress is clamped
// rather than rejected since the slider already bounds UI input.
func (e *Entry) Validate() error {
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", e.Date, err)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("invalid status %q", e.Status)
	}
	e.Progress = ClampProgress(e.Progress)
	return nil
}
