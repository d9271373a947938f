package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract is the binding lease record produced from a confirmed booking.
// Rent and deposit are snapshots taken at creation time.
type Contract struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	ContractNumber string          `json:"contract_number" db:"contract_number"`
	BookingID      uuid.UUID       `json:"booking_id" db:"booking_id"`
	RoomID         uuid.UUID       `json:"room_id" db:"room_id"`
	TenantID       uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	SignedDate     time.Time       `json:"signed_date" db:"signed_date"`
	StartDate      time.Time       `json:"start_date" db:"start_date"`
	EndDate        time.Time       `json:"end_date" db:"end_date"`
	MonthlyRent    decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	Deposit        decimal.Decimal `json:"deposit" db:"deposit"`
	ServiceIDs     []uuid.UUID     `json:"service_ids" db:"-"`
	Note           string          `json:"note" db:"note"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// CreateContractRequest is the operator's input for converting a confirmed
// booking. Dates are "2006-01-02" strings; empty optional fields take their
// documented defaults during composition.
type CreateContractRequest struct {
	ContractNumber string           `json:"contract_number"`
	RoomID         uuid.UUID        `json:"room_id" validate:"required"`
	SignedDate     string           `json:"signed_date"`
	StartDate      string           `json:"start_date" validate:"required"`
	EndDate        string           `json:"end_date"`
	MonthlyRent    *decimal.Decimal `json:"monthly_rent"`
	Deposit        *decimal.Decimal `json:"deposit"`
	TenantID       *uuid.UUID       `json:"tenant_id"`
	ServiceIDs     []uuid.UUID      `json:"service_ids"`
	Note           string           `json:"note"`
}

// BookingConversion is the fully validated unit of work handed to the
// repository layer: everything needed to create the contract, complete the
// booking and occupy the room in one transaction.
type BookingConversion struct {
	Contract    *Contract
	BookingID   uuid.UUID
	Prospective *ProspectiveTenant
	// RoomVersion is the room snapshot's updated_at; the occupancy update is
	// rejected when the room changed since the snapshot was taken.
	RoomVersion time.Time
}
