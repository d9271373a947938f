package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhatro-labs/booking-engine/internal/config"
	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/internal/repository"
	customError "github.com/nhatro-labs/booking-engine/pkg/errors"
)

// BookingService drives the booking lifecycle. Every transition is guarded
// locally before the repository is touched, and the guarded UPDATE re-checks
// the previous status so a concurrent mutation cannot slip through.
type BookingService struct {
	bookingRepo repository.BookingRepository
	ledger      *DepositLedger
	config      *config.Config
}

func NewBookingService(bookingRepo repository.BookingRepository, ledger *DepositLedger, cfg *config.Config) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		ledger:      ledger,
		config:      cfg,
	}
}

// Create registers a new booking in pending status.
func (s *BookingService) Create(ctx context.Context, request *domain.CreateBookingRequest) (*domain.Booking, error) {
	now := time.Now()
	booking := &domain.Booking{
		ID:             uuid.New(),
		BookingCode:    fmt.Sprintf("BK-%s-%04d", now.Format("200601"), rand.Intn(10000)),
		ApplicantName:  request.ApplicantName,
		ApplicantPhone: request.ApplicantPhone,
		ApplicantEmail: request.ApplicantEmail,
		RoomID:         request.RoomID,
		ExpectedMoveIn: request.ExpectedMoveIn,
		Deposit:        request.Deposit,
		Note:           request.Note,
		Status:         domain.BookingStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBookingNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return bookings, nil
}

// Confirm moves a pending booking to confirmed.
func (s *BookingService) Confirm(ctx context.Context, id uuid.UUID) (*domain.TransitionOutcome, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := domain.NextStatus(booking.Status, domain.EventConfirm)
	if !ok {
		return nil, customError.WrapInvalidTransition(booking.Status, string(domain.EventConfirm))
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, next); err != nil {
		if errors.Is(err, customError.ErrPreconditionFailed) {
			return nil, customError.WrapPreconditionFailed(id.String(), booking.Status, domain.BookingStatusPending)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	booking.Status = next
	return &domain.TransitionOutcome{Outcome: domain.OutcomeConfirmed, Booking: booking}, nil
}

// Cancel rejects or cancels a booking, refunding the full deposit through the
// ledger. Used for the simple reject flow; partial refunds go through
// ProposeRefund on the ledger directly.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID, note string) (*domain.TransitionOutcome, *domain.RefundRecord, error) {
	record, booking, err := s.ledger.QuickRefund(ctx, id, domain.RefundReasonCustomerCancel, note)
	if err != nil {
		return nil, nil, err
	}
	return &domain.TransitionOutcome{Outcome: domain.OutcomeCancelled, Booking: booking}, record, nil
}

// Refund applies an operator-proposed partial refund and cancels the booking.
func (s *BookingService) Refund(ctx context.Context, id uuid.UUID, request *domain.RefundRequest) (*domain.TransitionOutcome, *domain.RefundRecord, error) {
	record, booking, err := s.ledger.ProposeRefund(ctx, id, request.Amount, request.Reason, request.Note)
	if err != nil {
		return nil, nil, err
	}
	return &domain.TransitionOutcome{Outcome: domain.OutcomeRefunded, Booking: booking}, record, nil
}

// Delete removes a booking; completed and confirmed bookings are kept.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, customError.ErrInvalidTransition) {
			return customError.WrapInvalidTransition("confirmed or completed", "delete")
		}
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// ExpireStale cancels pending bookings whose expected move-in date passed the
// configured number of days ago, refunding the full deposit. Returns how many
// bookings were expired.
func (s *BookingService) ExpireStale(ctx context.Context, logger *logrus.Logger) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.config.Business.BookingExpiryDays)

	stale, err := s.bookingRepo.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	expired := 0
	for _, booking := range stale {
		_, _, err := s.ledger.QuickRefund(ctx, booking.ID, domain.RefundReasonOther, "booking expired: move-in date passed")
		if err != nil {
			logger.WithError(err).WithField("booking_code", booking.BookingCode).Warn("expiring stale booking")
			continue
		}
		expired++
	}

	return expired, nil
}
