package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the tracker sqlite database and runs migrations.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "tracker.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

// ensureDirForSQLite creates the parent dir for the sqlite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

// Repository handles CRUD for daily entries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByDate returns the entry for a date, or nil when none exists.
func (r *Repository) FindByDate(ctx context.Context, date string) (*Entry, error) {
	var entry Entry
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find entry %s: %w", date, err)
	}
	return &entry, nil
}

// Save upserts the entry for its date. Entries are never deleted.
// The primary key is always re-resolved from the date so a stale ID on the
// incoming entry can never rewrite another date's row.
func (r *Repository) Save(ctx context.Context, entry *Entry) error {
	existing, err := r.FindByDate(ctx, entry.Date)
	if err != nil {
		return err
	}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.ID = 0
	}
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("save entry %s: %w", entry.Date, err)
	}
	return nil
}

// ListDates returns all dates with an entry, newest first.
func (r *Repository) ListDates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := r.db.WithContext(ctx).Model(&Entry{}).
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	return dates, nil
}
