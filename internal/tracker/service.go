package tracker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"workflow-toolbox/internal/logger"
)

// Service wraps the repository with validation and day rollover.
type Service struct {
	repo *Repository
	log  logger.Logger
	cron *cron.Cron
}

func NewService(repo *Repository, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Today returns the current date key.
func Today() string {
	return time.Now().Format(DateLayout)
}

// LoadOrCreate returns the stored entry for a date, or a blank unsaved
// entry when the date has none yet.
func (s *Service) LoadOrCreate(ctx context.Context, date string) (*Entry, error) {
	entry, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = NewEntry(date)
		s.log.Debug("tracker", "new blank entry", map[string]interface{}{"date": date})
	}
	return entry, nil
}

// Save validates and persists an entry.
func (s *Service) Save(ctx context.Context, entry *Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return err
	}
	s.log.Info("tracker", "entry saved", map[string]interface{}{
		"date":     entry.Date,
		"status":   string(entry.Status),
		"progress": entry.Progress,
	})
	return nil
}

// ShiftDate moves a date key by the given number of days.
func ShiftDate(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

// StartRollover schedules onNewDay at local midnight so the form moves to
// the new day's entry. Stop the returned service via StopRollover.
func (s *Service) StartRollover(onNewDay func()) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("0 0 * * *", func() {
		s.log.Info("tracker", "day rollover", map[string]interface{}{"date": Today()})
		onNewDay()
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// StopRollover halts the rollover scheduler.
func (s *Service) StopRollover() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
