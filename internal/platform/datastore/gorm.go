package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

var _ Store = (*GormStore)(nil)

// GormStore runs datastore operations against a relational database via GORM.
// Tables are addressed by name, rows travel as column maps.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wires a GORM-backed store. Caller manages DB lifecycle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Insert writes all records in one statement.
func (s *GormStore) Insert(ctx context.Context, table string, records ...Record) ([]Record, error) {
	if err := s.check(table); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, map[string]any(rec.Clone()))
	}
	if err := s.db.WithContext(ctx).Table(table).Create(&rows).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrDuplicateKey, table, err)
		}
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, Record(row))
	}
	return out, nil
}

// Select reads matching rows.
func (s *GormStore) Select(ctx context.Context, table string, filter Filter, order ...OrderBy) ([]Record, error) {
	if err := s.check(table); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Table(table)
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}
	for _, o := range order {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	var rows []map[string]any
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, Record(row))
	}
	return out, nil
}

// Update patches matching rows and re-reads them.
func (s *GormStore) Update(ctx context.Context, table string, patch Record, filter Filter) ([]Record, error) {
	if err := s.check(table); err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return nil, ErrUnfilteredWrite
	}
	if err := s.db.WithContext(ctx).Table(table).Where(map[string]any(filter)).Updates(map[string]any(patch)).Error; err != nil {
		return nil, err
	}
	refreshed := Filter{}
	for column, value := range filter {
		if patched, ok := patch[column]; ok {
			value = patched
		}
		refreshed[column] = value
	}
	return s.Select(ctx, table, refreshed)
}

// Delete removes matching rows.
func (s *GormStore) Delete(ctx context.Context, table string, filter Filter) error {
	if err := s.check(table); err != nil {
		return err
	}
	if len(filter) == 0 {
		return ErrUnfilteredWrite
	}
	return s.db.WithContext(ctx).Table(table).Where(map[string]any(filter)).Delete(map[string]any{}).Error
}

func (s *GormStore) check(table string) error {
	if s == nil || s.db == nil {
		return errors.New("gorm datastore not configured")
	}
	if table == "" {
		return ErrEmptyTable
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
