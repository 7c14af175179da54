// Package datastore is the generic table-oriented data-access collaborator the
// storefront contexts persist through. Implementations exist for process memory
// and for PostgreSQL via GORM.
package datastore

import (
	"context"
	"errors"
	"maps"
)

var (
	// ErrUnfilteredWrite rejects update/delete calls without a filter.
	ErrUnfilteredWrite = errors.New("datastore: update and delete require a filter")
	// ErrDuplicateKey reports a unique constraint violation on insert.
	ErrDuplicateKey = errors.New("datastore: duplicate key")
	// ErrEmptyTable rejects calls without a table name.
	ErrEmptyTable = errors.New("datastore: table name is required")
)

// Record is a single row keyed by snake_case column name.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Filter is a conjunction of column equality conditions.
type Filter map[string]any

// OrderBy sorts a selection by a column.
type OrderBy struct {
	Column string
	Desc   bool
}

// Asc orders by column ascending.
func Asc(column string) OrderBy { return OrderBy{Column: column} }

// Desc orders by column descending.
func Desc(column string) OrderBy { return OrderBy{Column: column, Desc: true} }

// Store exposes insert/select/update/delete over named tables.
type Store interface {
	Insert(ctx context.Context, table string, records ...Record) ([]Record, error)
	Select(ctx context.Context, table string, filter Filter, order ...OrderBy) ([]Record, error)
	Update(ctx context.Context, table string, patch Record, filter Filter) ([]Record, error)
	Delete(ctx context.Context, table string, filter Filter) error
}
