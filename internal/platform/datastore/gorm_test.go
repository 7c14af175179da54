package datastore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockedStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStore(db), mock
}

func TestGormStore_Select(t *testing.T) {
	store, mock := newMockedStore(t)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE "orders"."order_number" = \$1 ORDER BY "created_at" DESC`).
		WithArgs("ORD-20261014-ABC123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "status"}).
			AddRow("o1", "ORD-20261014-ABC123", "pending"))

	rows, err := store.Select(context.Background(), "orders", Filter{"order_number": "ORD-20261014-ABC123"}, Desc("created_at"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "o1", rows[0]["id"])
	require.Equal(t, "pending", rows[0]["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Delete(t *testing.T) {
	store, mock := newMockedStore(t)

	mock.ExpectExec(`DELETE FROM "order_items" WHERE "order_items"."order_id" = \$1`).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, store.Delete(context.Background(), "order_items", Filter{"order_id": "o1"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Insert(t *testing.T) {
	store, mock := newMockedStore(t)

	mock.ExpectExec(`INSERT INTO "order_items" \("id","order_id","quantity"\) VALUES \(\$1,\$2,\$3\),\(\$4,\$5,\$6\)`).
		WithArgs("i1", "o1", int64(2), "i2", "o1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	rows, err := store.Insert(context.Background(), "order_items",
		Record{"id": "i1", "order_id": "o1", "quantity": int64(2)},
		Record{"id": "i2", "order_id": "o1", "quantity": int64(1)},
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "i2", rows[1]["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_InsertTranslatesDuplicateKey(t *testing.T) {
	for name, driverErr := range map[string]error{
		"pgx": &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_order_number"},
		"pq":  &pq.Error{Code: "23505"},
	} {
		t.Run(name, func(t *testing.T) {
			store, mock := newMockedStore(t)
			mock.ExpectExec(`INSERT INTO "orders" \("id","order_number"\) VALUES \(\$1,\$2\)`).
				WithArgs("o1", "ORD-20261014-ABC123").
				WillReturnError(driverErr)

			_, err := store.Insert(context.Background(), "orders", Record{"id": "o1", "order_number": "ORD-20261014-ABC123"})
			require.ErrorIs(t, err, ErrDuplicateKey)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_InsertPassesOtherErrorsThrough(t *testing.T) {
	store, mock := newMockedStore(t)
	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnError(&pgconn.PgError{Code: "23502"})

	_, err := store.Insert(context.Background(), "orders", Record{"id": "o1"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDuplicateKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpdateRereadsPatchedRows(t *testing.T) {
	store, mock := newMockedStore(t)

	mock.ExpectExec(`UPDATE "orders" SET "status"=\$1 WHERE "orders"."status" = \$2`).
		WithArgs("cancelled", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE "orders"."status" = \$1`).
		WithArgs("cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("o1", "cancelled"))

	rows, err := store.Update(context.Background(), "orders", Record{"status": "cancelled"}, Filter{"status": "pending"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "cancelled", rows[0]["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_RejectsUnfilteredWrites(t *testing.T) {
	store, mock := newMockedStore(t)

	require.ErrorIs(t, store.Delete(context.Background(), "orders", nil), ErrUnfilteredWrite)
	_, err := store.Update(context.Background(), "orders", Record{"status": "cancelled"}, nil)
	require.ErrorIs(t, err, ErrUnfilteredWrite)
	require.ErrorIs(t, store.Delete(context.Background(), "", Filter{"id": 1}), ErrEmptyTable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	require.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}
