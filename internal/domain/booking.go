package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// BookingEvent names a lifecycle transition request.
type BookingEvent string

const (
	EventConfirm  BookingEvent = "confirm"
	EventCancel   BookingEvent = "cancel"
	EventComplete BookingEvent = "complete"
)

// transitions is the full edge set of the booking state machine. Completed and
// cancelled are terminal.
var transitions = map[string]map[BookingEvent]string{
	BookingStatusPending: {
		EventConfirm: BookingStatusConfirmed,
		EventCancel:  BookingStatusCancelled,
	},
	BookingStatusConfirmed: {
		EventCancel:   BookingStatusCancelled,
		EventComplete: BookingStatusCompleted,
	},
}

// NextStatus returns the status a booking moves to when event fires, or
// ok=false when the edge does not exist.
func NextStatus(current string, event BookingEvent) (string, bool) {
	next, ok := transitions[current][event]
	return next, ok
}

// Booking represents a room reservation made ahead of signing a lease.
// Refund fields are populated when a cancellation disposes of the deposit.
type Booking struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	BookingCode    string           `json:"booking_code" db:"booking_code"`
	ApplicantName  string           `json:"applicant_name" db:"applicant_name"`
	ApplicantPhone string           `json:"applicant_phone" db:"applicant_phone"`
	ApplicantEmail string           `json:"applicant_email" db:"applicant_email"`
	RoomID         uuid.UUID        `json:"room_id" db:"room_id"`
	ExpectedMoveIn time.Time        `json:"expected_move_in" db:"expected_move_in"`
	Deposit        decimal.Decimal  `json:"deposit" db:"deposit"`
	Note           string           `json:"note" db:"note"`
	Status         string           `json:"status" db:"status"`
	ContractID     *uuid.UUID       `json:"contract_id,omitempty" db:"contract_id"`
	RefundAmount   *decimal.Decimal `json:"refund_amount,omitempty" db:"refund_amount"`
	RefundReason   *string          `json:"refund_reason,omitempty" db:"refund_reason"`
	RefundNote     *string          `json:"refund_note,omitempty" db:"refund_note"`
	RefundedAt     *time.Time       `json:"refunded_at,omitempty" db:"refunded_at"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// IsTerminal reports whether no further transition can fire.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}

// DTOs for requests and responses

type CreateBookingRequest struct {
	ApplicantName  string          `json:"applicant_name" validate:"required"`
	ApplicantPhone string          `json:"applicant_phone" validate:"omitempty,min=9"`
	ApplicantEmail string          `json:"applicant_email" validate:"omitempty,email"`
	RoomID         uuid.UUID       `json:"room_id" validate:"required"`
	ExpectedMoveIn time.Time       `json:"expected_move_in" validate:"required"`
	Deposit        decimal.Decimal `json:"deposit" validate:"required"`
	Note           string          `json:"note"`
}

type BookingFilter struct {
	Status string
	Block  string
	Search string
}

type RefundRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Reason string          `json:"reason" validate:"required"`
	Note   string          `json:"note"`
}

// TransitionOutcome tells the presentation layer which notification to render.
type TransitionOutcome struct {
	Outcome string   `json:"outcome"`
	Booking *Booking `json:"booking"`
}

const (
	OutcomeConfirmed = "confirmed"
	OutcomeCancelled = "cancelled"
	OutcomeRefunded  = "refunded"
	OutcomeCompleted = "completed"
)
