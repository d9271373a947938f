package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is created or referenced by the conversion pipeline, never mutated
// in place beyond creation. RoomID is nil while the tenant is unhoused.
type Tenant struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	FullName  string     `json:"full_name" db:"full_name"`
	Phone     string     `json:"phone" db:"phone"`
	AltPhone  string     `json:"alt_phone" db:"alt_phone"`
	Email     string     `json:"email" db:"email"`
	RoomID    *uuid.UUID `json:"room_id,omitempty" db:"room_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// HasRoom reports whether the tenant is already housed.
func (t *Tenant) HasRoom() bool {
	return t.RoomID != nil
}

// MatchRule names the resolver rule that produced a match.
type MatchRule string

const (
	MatchByPhone MatchRule = "phone"
	MatchByEmail MatchRule = "email"
	MatchByName  MatchRule = "name"
)

// ProspectiveTenant carries the booking's applicant fields when no existing
// tenant matched; the conversion transaction creates the tenant from it.
type ProspectiveTenant struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// TenantSelection is the tagged outcome of tenant resolution: exactly one of
// Matched or Prospective is set.
type TenantSelection struct {
	Matched     *Tenant            `json:"matched,omitempty"`
	MatchedBy   MatchRule          `json:"matched_by,omitempty"`
	Prospective *ProspectiveTenant `json:"prospective,omitempty"`
}

func (s TenantSelection) IsMatched() bool {
	return s.Matched != nil
}

// NameOnly reports whether the match rests solely on the name rule, which is
// too weak to act on without operator confirmation.
func (s TenantSelection) NameOnly() bool {
	return s.Matched != nil && s.MatchedBy == MatchByName
}
