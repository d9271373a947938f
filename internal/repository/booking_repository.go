package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	pkgerrors "github.com/nhatro-labs/booking-engine/pkg/errors"
)

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_code, applicant_name, applicant_phone, applicant_email,
			room_id, expected_move_in, deposit, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.BookingCode,
		booking.ApplicantName,
		booking.ApplicantPhone,
		booking.ApplicantEmail,
		booking.RoomID,
		booking.ExpectedMoveIn,
		booking.Deposit,
		booking.Note,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	return err
}

const bookingColumns = `id, booking_code, applicant_name, applicant_phone, applicant_email,
	room_id, expected_move_in, deposit, note, status, contract_id,
	refund_amount, refund_reason, refund_note, refunded_at, created_at, updated_at`

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	query := `
		SELECT b.id, b.booking_code, b.applicant_name, b.applicant_phone, b.applicant_email,
			b.room_id, b.expected_move_in, b.deposit, b.note, b.status, b.contract_id,
			b.refund_amount, b.refund_reason, b.refund_note, b.refunded_at, b.created_at, b.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE 1=1`

	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	if filter.Block != "" {
		args = append(args, filter.Block)
		query += fmt.Sprintf(" AND r.block = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (b.applicant_name ILIKE $%d OR b.applicant_phone ILIKE $%d OR b.booking_code ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY b.created_at DESC"

	var bookings []*domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, from, to, time.Now())
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pkgerrors.ErrPreconditionFailed
	}

	return nil
}

func (r *bookingRepository) RecordRefund(ctx context.Context, record domain.RefundRecord, from string) error {
	query := `
		UPDATE bookings
		SET status = $3, refund_amount = $4, refund_reason = $5, refund_note = $6,
			refunded_at = $7, updated_at = $7
		WHERE id = $1 AND status = $2
	`

	res, err := r.db.ExecContext(ctx, query,
		record.BookingID,
		from,
		domain.BookingStatusCancelled,
		record.Refunded,
		record.Reason,
		record.Note,
		record.RecordedAt,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pkgerrors.ErrPreconditionFailed
	}

	return nil
}

func (r *bookingRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE status = $1 AND expected_move_in < $2
		ORDER BY expected_move_in
	`, bookingColumns)

	var bookings []*domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, domain.BookingStatusPending, cutoff); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM bookings
		WHERE id = $1 AND status IN ($2, $3)
	`

	res, err := r.db.ExecContext(ctx, query, id, domain.BookingStatusPending, domain.BookingStatusCancelled)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pkgerrors.ErrInvalidTransition
	}

	return nil
}
