package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/internal/repository"
	customError "github.com/nhatro-labs/booking-engine/pkg/errors"
)

// NewRefundRecord builds the deposit disposition for a booking. Retained is
// derived from the deposit and the refunded amount, never supplied, so
// refunded + retained always equals the original deposit.
func NewRefundRecord(booking *domain.Booking, amount decimal.Decimal, reason, note string) (domain.RefundRecord, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.RefundRecord{}, customError.WrapMissingReason()
	}
	if !domain.ValidRefundReason(reason) {
		return domain.RefundRecord{}, customError.WrapInvalidReason(reason)
	}
	if amount.IsNegative() || amount.GreaterThan(booking.Deposit) {
		return domain.RefundRecord{}, customError.WrapInvalidAmount(amount.String(), booking.Deposit.String())
	}

	return domain.RefundRecord{
		BookingID:  booking.ID,
		Deposit:    booking.Deposit,
		Refunded:   amount,
		Retained:   booking.Deposit.Sub(amount),
		Reason:     reason,
		Note:       note,
		RecordedAt: time.Now(),
	}, nil
}

// DepositLedger records the financial disposition of cancelled bookings.
type DepositLedger struct {
	bookingRepo repository.BookingRepository
}

func NewDepositLedger(bookingRepo repository.BookingRepository) *DepositLedger {
	return &DepositLedger{bookingRepo: bookingRepo}
}

// QuickRefund refunds the full deposit and cancels the booking in one step.
func (l *DepositLedger) QuickRefund(ctx context.Context, bookingID uuid.UUID, reason, note string) (*domain.RefundRecord, *domain.Booking, error) {
	booking, err := l.getBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	record, err := NewRefundRecord(booking, booking.Deposit, reason, note)
	if err != nil {
		return nil, nil, err
	}

	if err := l.apply(ctx, booking, record); err != nil {
		return nil, nil, err
	}

	return &record, booking, nil
}

// ProposeRefund validates and applies a partial refund.
func (l *DepositLedger) ProposeRefund(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal, reason, note string) (*domain.RefundRecord, *domain.Booking, error) {
	booking, err := l.getBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	record, err := NewRefundRecord(booking, amount, reason, note)
	if err != nil {
		return nil, nil, err
	}

	if err := l.apply(ctx, booking, record); err != nil {
		return nil, nil, err
	}

	return &record, booking, nil
}

func (l *DepositLedger) getBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := l.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBookingNotFound(bookingID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return booking, nil
}

// apply drives the booking to cancelled. The cancel edge must exist from the
// booking's current status; a completed booking never gets here.
func (l *DepositLedger) apply(ctx context.Context, booking *domain.Booking, record domain.RefundRecord) error {
	next, ok := domain.NextStatus(booking.Status, domain.EventCancel)
	if !ok {
		return customError.WrapInvalidTransition(booking.Status, string(domain.EventCancel))
	}

	if err := l.bookingRepo.RecordRefund(ctx, record, booking.Status); err != nil {
		if errors.Is(err, customError.ErrPreconditionFailed) {
			return customError.WrapPreconditionFailed(booking.ID.String(), booking.Status, booking.Status)
		}
		return customError.WrapDatabaseError(err)
	}

	booking.Status = next
	booking.RefundAmount = &record.Refunded
	booking.RefundReason = &record.Reason
	if record.Note != "" {
		booking.RefundNote = &record.Note
	}
	booking.RefundedAt = &record.RecordedAt

	return nil
}
