package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	customError "github.com/nhatro-labs/booking-engine/pkg/errors"
)

// defaultPlanNames are the offerings pre-selected for a new contract, matched
// by exact case-insensitive name. Absent names are skipped, never an error.
var defaultPlanNames = []string{"Điện", "Nước", "Rác", "Internet 1", "Gửi xe"}

// DefaultPlan seeds the standard service bundle from the active catalog.
// Calling it twice against the same catalog yields the same set.
func DefaultPlan(catalog []domain.Service) domain.ServicePlan {
	plan := domain.NewServicePlan()
	for _, name := range defaultPlanNames {
		for _, svc := range catalog {
			if svc.Active && strings.EqualFold(svc.Name, name) {
				plan[svc.ID] = struct{}{}
				break
			}
		}
	}
	return plan
}

// ValidatePlanExclusivity rejects a submitted service set holding more than
// one member of an exclusivity group. Ids absent from the catalog carry no
// group and pass through; duplicates of the same id count once.
func ValidatePlanExclusivity(serviceIDs []uuid.UUID, catalog []domain.Service) error {
	groups := make(map[uuid.UUID]string, len(catalog))
	for _, svc := range catalog {
		if svc.ExclusivityGroup != "" {
			groups[svc.ID] = svc.ExclusivityGroup
		}
	}

	seen := make(map[uuid.UUID]struct{}, len(serviceIDs))
	taken := make(map[string]struct{})
	for _, id := range serviceIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		group, ok := groups[id]
		if !ok {
			continue
		}
		if _, conflict := taken[group]; conflict {
			return customError.WrapServiceConflict(group)
		}
		taken[group] = struct{}{}
	}

	return nil
}

// TogglePlanService adds or removes a service, returning a new plan. Adding a
// service that belongs to an exclusivity group first evicts every other group
// member, so a plan never holds two internet tiers.
func TogglePlanService(plan domain.ServicePlan, serviceID uuid.UUID, catalog []domain.Service) domain.ServicePlan {
	out := plan.Clone()

	var target *domain.Service
	for i := range catalog {
		if catalog[i].ID == serviceID {
			target = &catalog[i]
			break
		}
	}
	if target == nil {
		return out
	}

	if out.Has(serviceID) {
		delete(out, serviceID)
		return out
	}

	if target.ExclusivityGroup != "" {
		for _, svc := range catalog {
			if svc.ExclusivityGroup == target.ExclusivityGroup && out.Has(svc.ID) {
				delete(out, svc.ID)
			}
		}
	}

	out[serviceID] = struct{}{}
	return out
}
