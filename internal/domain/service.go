package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExclusivityGroupInternet marks internet-tier services, of which at most one
// may be present in any service plan.
const ExclusivityGroupInternet = "internet"

// Service is a billable amenity offering. Immutable from this engine's
// perspective; the admin screens own it.
type Service struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Category         string          `json:"category" db:"category"`
	UnitPrice        decimal.Decimal `json:"unit_price" db:"unit_price"`
	Unit             string          `json:"unit" db:"unit"`
	ExclusivityGroup string          `json:"exclusivity_group" db:"exclusivity_group"`
	Active           bool            `json:"active" db:"active"`
}

// ServicePlan is the set of service ids attached to a contract. Plans are
// values: builder operations copy, never mutate in place.
type ServicePlan map[uuid.UUID]struct{}

func NewServicePlan(ids ...uuid.UUID) ServicePlan {
	plan := make(ServicePlan, len(ids))
	for _, id := range ids {
		plan[id] = struct{}{}
	}
	return plan
}

func (p ServicePlan) Has(id uuid.UUID) bool {
	_, ok := p[id]
	return ok
}

func (p ServicePlan) Clone() ServicePlan {
	out := make(ServicePlan, len(p))
	for id := range p {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the plan members as a slice, order unspecified.
func (p ServicePlan) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p))
	for id := range p {
		out = append(out, id)
	}
	return out
}
