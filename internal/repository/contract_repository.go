package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	pkgerrors "github.com/nhatro-labs/booking-engine/pkg/errors"
)

type contractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) ContractRepository {
	return &contractRepository{db: db}
}

// ConvertBooking runs the whole conversion in one transaction so a failure at
// any step leaves the booking confirmed and the room untouched.
func (r *contractRepository) ConvertBooking(ctx context.Context, conv *domain.BookingConversion) (*domain.Contract, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	contract := conv.Contract
	now := time.Now()

	// Create the tenant first when resolution produced a prospective one.
	if conv.Prospective != nil {
		tenantID := uuid.New()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO tenants (id, full_name, phone, alt_phone, email, room_id, created_at)
			VALUES ($1, $2, $3, '', $4, NULL, $5)
		`, tenantID, conv.Prospective.FullName, conv.Prospective.Phone, conv.Prospective.Email, now)
		if err != nil {
			return nil, err
		}
		contract.TenantID = tenantID
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contracts (id, contract_number, booking_id, room_id, tenant_id,
			signed_date, start_date, end_date, monthly_rent, deposit, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		contract.ID,
		contract.ContractNumber,
		contract.BookingID,
		contract.RoomID,
		contract.TenantID,
		contract.SignedDate,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyRent,
		contract.Deposit,
		contract.Note,
		now,
	)
	if err != nil {
		return nil, err
	}

	for _, serviceID := range contract.ServiceIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO contract_services (contract_id, service_id)
			VALUES ($1, $2)
		`, contract.ID, serviceID)
		if err != nil {
			return nil, err
		}
	}

	// Complete the booking, guarded on confirmed status.
	res, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET status = $3, contract_id = $4, updated_at = $5
		WHERE id = $1 AND status = $2
	`, conv.BookingID, domain.BookingStatusConfirmed, domain.BookingStatusCompleted, contract.ID, now)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, pkgerrors.ErrPreconditionFailed
	}

	// Occupy the room with a compare-and-set on the snapshot version; a
	// concurrent conversion for the same room loses here.
	res, err = tx.ExecContext(ctx, `
		UPDATE rooms
		SET status = $3, tenant_id = $4, updated_at = $5
		WHERE id = $1 AND status = $2 AND updated_at = $6
	`, contract.RoomID, domain.RoomStatusVacant, domain.RoomStatusOccupied, contract.TenantID, now, conv.RoomVersion)
	if err != nil {
		return nil, err
	}
	rows, err = res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, pkgerrors.ErrRoomUnavailable
	}

	// Assign the tenant to the room so they drop out of future matching. The
	// unassigned guard makes this a compare-and-set: a tenant housed by a
	// concurrent conversion loses here and the whole transaction rolls back.
	res, err = tx.ExecContext(ctx, `
		UPDATE tenants
		SET room_id = $2
		WHERE id = $1 AND room_id IS NULL
	`, contract.TenantID, contract.RoomID)
	if err != nil {
		return nil, err
	}
	rows, err = res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, pkgerrors.ErrTenantUnavailable
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	contract.CreatedAt = now
	return contract, nil
}

func (r *contractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	query := `
		SELECT id, contract_number, booking_id, room_id, tenant_id,
			signed_date, start_date, end_date, monthly_rent, deposit, note, created_at
		FROM contracts
		WHERE id = $1
	`

	var contract domain.Contract
	if err := r.db.GetContext(ctx, &contract, query, id); err != nil {
		return nil, err
	}

	var serviceIDs []uuid.UUID
	err := r.db.SelectContext(ctx, &serviceIDs, `
		SELECT service_id FROM contract_services WHERE contract_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	contract.ServiceIDs = serviceIDs

	return &contract, nil
}
