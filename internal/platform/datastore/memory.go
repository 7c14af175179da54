package datastore

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps tables in process memory. Rows keep insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Record
	unique map[string][]string
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithUniqueColumn makes inserts into table fail with ErrDuplicateKey when
// column already holds the same value.
func WithUniqueColumn(table, column string) MemoryOption {
	return func(s *MemoryStore) {
		s.unique[table] = append(s.unique[table], column)
	}
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		tables: map[string][]Record{},
		unique: map[string][]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Insert appends all records or none of them.
func (s *MemoryStore) Insert(_ context.Context, table string, records ...Record) ([]Record, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	pending := make([]Record, 0, len(records))
	for _, rec := range records {
		clone := rec.Clone()
		for _, column := range s.unique[table] {
			value, ok := clone[column]
			if !ok {
				continue
			}
			if containsValue(rows, column, value) || containsValue(pending, column, value) {
				return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateKey, table, column)
			}
		}
		pending = append(pending, clone)
	}
	s.tables[table] = append(rows, pending...)
	return cloneAll(pending), nil
}

// Select returns matching rows, optionally sorted.
func (s *MemoryStore) Select(_ context.Context, table string, filter Filter, order ...OrderBy) ([]Record, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Record
	for _, row := range s.tables[table] {
		if matches(row, filter) {
			result = append(result, row.Clone())
		}
	}
	if len(order) > 0 {
		slices.SortStableFunc(result, func(a, b Record) int {
			for _, o := range order {
				c := compareValues(a[o.Column], b[o.Column])
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}
	return result, nil
}

// Update applies patch to matching rows and returns them.
func (s *MemoryStore) Update(_ context.Context, table string, patch Record, filter Filter) ([]Record, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}
	if len(filter) == 0 {
		return nil, ErrUnfilteredWrite
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []Record
	for _, row := range s.tables[table] {
		if !matches(row, filter) {
			continue
		}
		for k, v := range patch {
			row[k] = v
		}
		updated = append(updated, row.Clone())
	}
	return updated, nil
}

// Delete removes matching rows. Deleting nothing is not an error.
func (s *MemoryStore) Delete(_ context.Context, table string, filter Filter) error {
	if table == "" {
		return ErrEmptyTable
	}
	if len(filter) == 0 {
		return ErrUnfilteredWrite
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[table] = slices.DeleteFunc(s.tables[table], func(row Record) bool {
		return matches(row, filter)
	})
	return nil
}

// Len reports how many rows a table holds.
func (s *MemoryStore) Len(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

func matches(row Record, filter Filter) bool {
	for column, want := range filter {
		got, ok := row[column]
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

func containsValue(rows []Record, column string, value any) bool {
	for _, row := range rows {
		if got, ok := row[column]; ok && equalValues(got, value) {
			return true
		}
	}
	return false
}

func equalValues(a, b any) bool {
	if da, ok := a.(decimal.Decimal); ok {
		if db, ok := b.(decimal.Decimal); ok {
			return da.Equal(db)
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b any) int {
	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return cmp.Compare(va, vb)
		}
	case int:
		if vb, ok := b.(int); ok {
			return cmp.Compare(va, vb)
		}
	case int64:
		if vb, ok := b.(int64); ok {
			return cmp.Compare(va, vb)
		}
	case decimal.Decimal:
		if vb, ok := b.(decimal.Decimal); ok {
			return va.Cmp(vb)
		}
	case time.Time:
		if vb, ok := b.(time.Time); ok {
			return va.Compare(vb)
		}
	}
	return 0
}

func cloneAll(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Clone())
	}
	return out
}
