package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nhatro-labs/booking-engine/internal/domain"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by its id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// List retrieves bookings matching the filter
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)

	// UpdateStatus moves a booking from one status to another. The update is
	// guarded on the previous status so a concurrent transition loses cleanly.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error

	// RecordRefund cancels a booking and stores the deposit disposition in the
	// same guarded update.
	RecordRefund(ctx context.Context, record domain.RefundRecord, from string) error

	// ListStalePending retrieves pending bookings whose expected move-in date
	// is before the cutoff.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)

	// Delete removes a booking; only pending and cancelled bookings may go.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomRepository defines the interface for room snapshot reads
type RoomRepository interface {
	// List retrieves all rooms
	List(ctx context.Context) ([]*domain.Room, error)

	// GetByID retrieves a room snapshot by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
}

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	// List retrieves tenants, optionally only those without a room
	List(ctx context.Context, unassignedOnly bool) ([]*domain.Tenant, error)

	// GetByID retrieves a tenant by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// ServiceRepository defines the interface for service catalog reads
type ServiceRepository interface {
	// ListActive retrieves all active services
	ListActive(ctx context.Context) ([]domain.Service, error)
}

// ContractRepository defines the interface for contract creation
type ContractRepository interface {
	// ConvertBooking atomically creates the contract (and the tenant, when the
	// selection was prospective), completes the booking and occupies the room.
	// A room snapshot mismatch surfaces as ErrRoomUnavailable; a booking that
	// left confirmed status surfaces as ErrPreconditionFailed.
	ConvertBooking(ctx context.Context, conv *domain.BookingConversion) (*domain.Contract, error)

	// GetByID retrieves a contract with its attached service ids
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
}
