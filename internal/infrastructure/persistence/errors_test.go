package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/sitebuild/backend/internal/application/txn"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/domain/workforce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, shared.ErrNotFound},
		{"foreign key", gorm.ErrForeignKeyViolated, shared.ErrConflict},
		{"duplicate key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), shared.ErrConflict},
		{"deadline", context.DeadlineExceeded, shared.ErrTransientStorage},
		{"bad conn", driver.ErrBadConn, shared.ErrTransientStorage},
		{"network", &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}, shared.ErrTransientStorage},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, shared.ErrTransientStorage},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, shared.ErrTransientStorage},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, shared.ErrTransientStorage},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, shared.ErrTransientStorage},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}, shared.ErrTransientStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		in := shared.NewValidationError("amount", "bad")
		assert.Same(t, in, translateError(in))
	})

	t.Run("other errors are returned unchanged", func(t *testing.T) {
		in := &pgconn.PgError{Code: "42P01"}
		got := translateError(in)
		assert.Same(t, in, got)
		assert.NotErrorIs(t, got, shared.ErrTransientStorage)
	})
}

var workerColumns = []string{"id", "name", "role", "hourly_rate", "contact", "total_paid", "last_payment_date", "created_at", "updated_at"}

func TestPaymentScope_RollsBackWhenTotalUpdateFails(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "workers" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(workerColumns).
			AddRow(7, "Ibrahim Musa", "Foreman", "4000", "", "0", nil, now, now))
	mock.ExpectQuery(`INSERT INTO "worker_payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "workers" SET`).
		WillReturnError(&net.OpError{Op: "write", Net: "tcp", Err: errors.New("broken pipe")})
	mock.ExpectRollback()

	err := NewGormTransactionScope(db).Execute(ctx, func(repos txn.Repositories) error {
		w, err := repos.Workers().FindByIDForUpdate(ctx, 7)
		if err != nil {
			return err
		}
		p, err := workforce.NewPayment(w.ID, decimal.NewFromInt(500), now, "weekly wage")
		if err != nil {
			return err
		}
		if err := repos.Payments().Append(ctx, p); err != nil {
			return err
		}
		return repos.Workers().ApplyPayment(ctx, w.ID, p.Amount, p.PaymentDate)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrTransientStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWorkerRepository_TransientReadError(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "workers"`).
		WillReturnError(&pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"})

	_, err := NewGormWorkerRepository(db).FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, shared.ErrTransientStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWorkerRepository_ApplyPaymentMissingRow(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE "workers" SET .*"total_paid"=total_paid \+ \$`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewGormWorkerRepository(db).ApplyPayment(context.Background(), 42, decimal.NewFromInt(10), time.Now())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
