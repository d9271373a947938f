package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoomStatusVacant      = "vacant"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room is a read-mostly snapshot owned by the room-inventory subsystem.
// UpdatedAt doubles as the snapshot version for the occupancy compare-and-set
// during booking conversion.
type Room struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Block       string          `json:"block" db:"block"`
	BaseRate    decimal.Decimal `json:"base_rate" db:"base_rate"`
	CurrentRate decimal.Decimal `json:"current_rate" db:"current_rate"`
	Deposit     decimal.Decimal `json:"deposit" db:"deposit"`
	Status      string          `json:"status" db:"status"`
	TenantID    *uuid.UUID      `json:"tenant_id,omitempty" db:"tenant_id"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

func (r *Room) IsVacant() bool {
	return r.Status == RoomStatusVacant
}
