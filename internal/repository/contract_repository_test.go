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

func newMockContractRepo(t *testing.T) (ContractRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewContractRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func matchedConversion() *domain.BookingConversion {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	return &domain.BookingConversion{
		Contract: &domain.Contract{
			ID:             uuid.New(),
			ContractNumber: "HD-202509-0042",
			BookingID:      uuid.New(),
			RoomID:         uuid.New(),
			TenantID:       uuid.New(),
			SignedDate:     start,
			StartDate:      start,
			EndDate:        start.AddDate(1, 0, 0),
			MonthlyRent:    decimal.NewFromInt(3500000),
			Deposit:        decimal.NewFromInt(2000000),
		},
		BookingID:   uuid.New(),
		RoomVersion: time.Now(),
	}
}

func TestConvertBooking_TenantAssignment(t *testing.T) {
	t.Run("Unassigned Tenant Housed", func(t *testing.T) {
		repo, mock := newMockContractRepo(t)
		conv := matchedConversion()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO contracts`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE rooms`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE tenants`).
			WithArgs(conv.Contract.TenantID, conv.Contract.RoomID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		contract, err := repo.ConvertBooking(context.Background(), conv)

		require.NoError(t, err)
		assert.Equal(t, conv.Contract.TenantID, contract.TenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Concurrently Housed Tenant Rolls Back", func(t *testing.T) {
		repo, mock := newMockContractRepo(t)
		conv := matchedConversion()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO contracts`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE rooms`).WillReturnResult(sqlmock.NewResult(0, 1))
		// The tenant picked up a room between the vacancy check and commit;
		// the unassigned guard matches no row.
		mock.ExpectExec(`UPDATE tenants`).
			WithArgs(conv.Contract.TenantID, conv.Contract.RoomID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.ConvertBooking(context.Background(), conv)

		assert.ErrorIs(t, err, pkgerrors.ErrTenantUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConvertBooking_RoomVersionChangedRollsBack(t *testing.T) {
	repo, mock := newMockContractRepo(t)
	conv := matchedConversion()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO contracts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE rooms`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ConvertBooking(context.Background(), conv)

	assert.ErrorIs(t, err, pkgerrors.ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
