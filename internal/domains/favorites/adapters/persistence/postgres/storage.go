package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-api/internal/domains/favorites/ports"
)

// DefaultStaleAfter is the retention used by the purger when none is configured.
const DefaultStaleAfter = 30 * 24 * time.Hour

var errStorageNotConfigured = errors.New("postgres favorites storage not configured")

// Storage persists serialized favorites snapshots in the local_storage table.
// Caller owns DB lifecycle.
type Storage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

type storageRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:512"`
	Value     []byte    `gorm:"column:value;type:bytea"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (storageRecord) TableName() string { return "local_storage" }

func (s *Storage) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.ensureDB(); err != nil {
		return nil, false, err
	}
	var rec storageRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}

// Write upserts the snapshot stored under key.
func (s *Storage) Write(ctx context.Context, key string, data []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("storage key is required")
	}
	rec := storageRecord{Key: key, Value: data}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

// PurgeStale removes snapshots not written for longer than olderThan and
// returns the number of rows deleted.
func (s *Storage) PurgeStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	if olderThan <= 0 {
		olderThan = DefaultStaleAfter
	}
	cutoff := time.Now().Add(-olderThan)
	res := s.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&storageRecord{})
	return res.RowsAffected, res.Error
}

func (s *Storage) ensureDB() error {
	if s == nil || s.db == nil {
		return errStorageNotConfigured
	}
	return nil
}

var _ ports.Storage = (*Storage)(nil)
