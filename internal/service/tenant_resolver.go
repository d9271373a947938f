package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/internal/repository"
)

// MatchTenant decides whether a booking's declared contact maps to a known
// tenant. Rules fire in order (phone, email, name), first match wins, and
// only tenants without a room assignment are eligible. Absence of a match is
// a normal outcome, not a failure.
func MatchTenant(booking *domain.Booking, tenants []*domain.Tenant) domain.TenantSelection {
	phone := strings.TrimSpace(booking.ApplicantPhone)
	email := strings.TrimSpace(booking.ApplicantEmail)
	name := strings.TrimSpace(booking.ApplicantName)

	if phone != "" {
		for _, t := range tenants {
			if t.HasRoom() {
				continue
			}
			if strings.TrimSpace(t.Phone) == phone {
				return domain.TenantSelection{Matched: t, MatchedBy: domain.MatchByPhone}
			}
		}
	}

	if email != "" {
		for _, t := range tenants {
			if t.HasRoom() {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(t.Email), email) {
				return domain.TenantSelection{Matched: t, MatchedBy: domain.MatchByEmail}
			}
		}
	}

	if name != "" {
		for _, t := range tenants {
			if t.HasRoom() {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(t.FullName), name) {
				return domain.TenantSelection{Matched: t, MatchedBy: domain.MatchByName}
			}
		}
	}

	return domain.TenantSelection{
		Prospective: &domain.ProspectiveTenant{
			FullName: name,
			Phone:    phone,
			Email:    email,
		},
	}
}

// TenantResolver resolves booking contacts against the tenant directory.
type TenantResolver struct {
	bookingRepo repository.BookingRepository
	tenantRepo  repository.TenantRepository
}

func NewTenantResolver(bookingRepo repository.BookingRepository, tenantRepo repository.TenantRepository) *TenantResolver {
	return &TenantResolver{
		bookingRepo: bookingRepo,
		tenantRepo:  tenantRepo,
	}
}

// Resolve loads the unassigned tenants and matches the booking against them.
func (r *TenantResolver) Resolve(ctx context.Context, bookingID uuid.UUID) (domain.TenantSelection, error) {
	booking, err := r.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return domain.TenantSelection{}, err
	}

	tenants, err := r.tenantRepo.List(ctx, true)
	if err != nil {
		return domain.TenantSelection{}, err
	}

	return MatchTenant(booking, tenants), nil
}
