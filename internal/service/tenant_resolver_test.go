package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/tests/mocks"
)

func unassigned(name, phone, email string) *domain.Tenant {
	return &domain.Tenant{ID: uuid.New(), FullName: name, Phone: phone, Email: email}
}

func housed(name, phone, email string) *domain.Tenant {
	roomID := uuid.New()
	t := unassigned(name, phone, email)
	t.RoomID = &roomID
	return t
}

func TestMatchTenant_PhoneWinsFirst(t *testing.T) {
	byPhone := unassigned("Trần Thị B", "0912345678", "b@example.com")
	byEmail := unassigned("Lê Văn C", "0999999999", "an@example.com")

	booking := &domain.Booking{
		ApplicantName:  "Nguyễn Văn An",
		ApplicantPhone: "0912345678",
		ApplicantEmail: "an@example.com",
	}

	sel := MatchTenant(booking, []*domain.Tenant{byEmail, byPhone})

	require.True(t, sel.IsMatched())
	assert.Equal(t, byPhone.ID, sel.Matched.ID)
	assert.Equal(t, domain.MatchByPhone, sel.MatchedBy)
}

func TestMatchTenant_EmailWhenPhoneAbsent(t *testing.T) {
	byEmail := unassigned("Lê Văn C", "0999999999", "An@Example.com")

	booking := &domain.Booking{
		ApplicantName:  "Nguyễn Văn An",
		ApplicantEmail: "an@example.com",
	}

	sel := MatchTenant(booking, []*domain.Tenant{byEmail})

	require.True(t, sel.IsMatched())
	assert.Equal(t, domain.MatchByEmail, sel.MatchedBy)
}

func TestMatchTenant_NameIsLastAndFlagged(t *testing.T) {
	byName := unassigned("nguyễn văn an", "0888888888", "other@example.com")

	booking := &domain.Booking{ApplicantName: "Nguyễn Văn An"}

	sel := MatchTenant(booking, []*domain.Tenant{byName})

	require.True(t, sel.IsMatched())
	assert.Equal(t, domain.MatchByName, sel.MatchedBy)
	assert.True(t, sel.NameOnly(), "name-only match needs operator confirmation")
}

func TestMatchTenant_HousedTenantsNeverMatch(t *testing.T) {
	tenant := housed("Nguyễn Văn An", "0912345678", "an@example.com")

	booking := &domain.Booking{
		ApplicantName:  "Nguyễn Văn An",
		ApplicantPhone: "0912345678",
		ApplicantEmail: "an@example.com",
	}

	sel := MatchTenant(booking, []*domain.Tenant{tenant})

	assert.False(t, sel.IsMatched())
	require.NotNil(t, sel.Prospective)
}

func TestMatchTenant_NoMatchReturnsProspective(t *testing.T) {
	booking := &domain.Booking{
		ApplicantName:  "  Nguyễn Văn An  ",
		ApplicantPhone: " 0912345678 ",
		ApplicantEmail: "an@example.com",
	}

	sel := MatchTenant(booking, nil)

	require.False(t, sel.IsMatched())
	require.NotNil(t, sel.Prospective)
	assert.Equal(t, "Nguyễn Văn An", sel.Prospective.FullName)
	assert.Equal(t, "0912345678", sel.Prospective.Phone)
	assert.Equal(t, "an@example.com", sel.Prospective.Email)
}

func TestMatchTenant_EmptyFieldsSkipRules(t *testing.T) {
	// A tenant with an empty phone must not match a booking with an empty phone.
	tenant := unassigned("Trần Thị B", "", "")

	booking := &domain.Booking{ApplicantName: "Nguyễn Văn An"}

	sel := MatchTenant(booking, []*domain.Tenant{tenant})

	assert.False(t, sel.IsMatched())
}

func TestTenantResolver_Resolve(t *testing.T) {
	mockBookingRepo := &mocks.MockBookingRepository{}
	mockTenantRepo := &mocks.MockTenantRepository{}

	resolver := NewTenantResolver(mockBookingRepo, mockTenantRepo)

	bookingID := uuid.New()
	booking := &domain.Booking{
		ID:             bookingID,
		ApplicantName:  "Nguyễn Văn An",
		ApplicantPhone: "0912345678",
	}
	tenant := unassigned("Trần Thị B", "0912345678", "")

	mockBookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)
	mockTenantRepo.On("List", mock.Anything, true).Return([]*domain.Tenant{tenant}, nil)

	sel, err := resolver.Resolve(context.Background(), bookingID)

	require.NoError(t, err)
	require.True(t, sel.IsMatched())
	assert.Equal(t, tenant.ID, sel.Matched.ID)

	mockBookingRepo.AssertExpectations(t)
	mockTenantRepo.AssertExpectations(t)
}
