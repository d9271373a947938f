package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	pkgerrors "github.com/nhatro-labs/booking-engine/pkg/errors"
)

func newMockRepo(t *testing.T) (BookingRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBookingRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(id, domain.BookingStatusPending, domain.BookingStatusConfirmed, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), id, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Status Changed Concurrently", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(id, domain.BookingStatusPending, domain.BookingStatusConfirmed, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), id, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, pkgerrors.ErrPreconditionFailed)
	})
}

func TestRecordRefund(t *testing.T) {
	repo, mock := newMockRepo(t)

	record := domain.RefundRecord{
		BookingID:  uuid.New(),
		Deposit:    decimal.NewFromInt(2000000),
		Refunded:   decimal.NewFromInt(1500000),
		Retained:   decimal.NewFromInt(500000),
		Reason:     domain.RefundReasonCustomerCancel,
		Note:       "tenant changed plans",
		RecordedAt: time.Now(),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(record.BookingID, domain.BookingStatusConfirmed, domain.BookingStatusCancelled,
				record.Refunded, record.Reason, record.Note, record.RecordedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RecordRefund(context.Background(), record, domain.BookingStatusConfirmed)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking Already Moved", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(record.BookingID, domain.BookingStatusConfirmed, domain.BookingStatusCancelled,
				record.Refunded, record.Reason, record.Note, record.RecordedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RecordRefund(context.Background(), record, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, pkgerrors.ErrPreconditionFailed)
	})
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	t.Run("Pending Booking Deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings`).
			WithArgs(id, domain.BookingStatusPending, domain.BookingStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), id)
		require.NoError(t, err)
	})

	t.Run("Completed Booking Kept", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings`).
			WithArgs(id, domain.BookingStatusPending, domain.BookingStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), id)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidTransition)
	})
}

func TestList_Filters(t *testing.T) {
	repo, mock := newMockRepo(t)

	columns := []string{"id", "booking_code", "applicant_name", "applicant_phone", "applicant_email",
		"room_id", "expected_move_in", "deposit", "note", "status", "contract_id",
		"refund_amount", "refund_reason", "refund_note", "refunded_at", "created_at", "updated_at"}

	now := time.Now()
	rows := sqlmock.NewRows(columns).AddRow(
		uuid.New().String(), "BK-202508-0042", "Nguyễn Văn An", "0912345678", "",
		uuid.New().String(), now, "2000000", "", domain.BookingStatusPending, nil,
		nil, nil, nil, nil, now, now,
	)

	mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
		WithArgs(domain.BookingStatusPending, "A", "%An%").
		WillReturnRows(rows)

	bookings, err := repo.List(context.Background(), domain.BookingFilter{
		Status: domain.BookingStatusPending,
		Block:  "A",
		Search: "An",
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "BK-202508-0042", bookings[0].BookingCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
