package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhatro-labs/booking-engine/internal/config"
	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/internal/repository"
	customError "github.com/nhatro-labs/booking-engine/pkg/errors"
	"github.com/nhatro-labs/booking-engine/pkg/utils"
)

// ContractComposer assembles a contract-creation request from a confirmed
// booking, the room snapshot and the tenant selection, then submits it as one
// transaction. A failure anywhere leaves the booking confirmed.
type ContractComposer struct {
	bookingRepo  repository.BookingRepository
	roomRepo     repository.RoomRepository
	tenantRepo   repository.TenantRepository
	contractRepo repository.ContractRepository
	catalog      *CatalogService
	config       *config.Config
}

func NewContractComposer(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	tenantRepo repository.TenantRepository,
	contractRepo repository.ContractRepository,
	catalog *CatalogService,
	cfg *config.Config,
) *ContractComposer {
	return &ContractComposer{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		tenantRepo:   tenantRepo,
		contractRepo: contractRepo,
		catalog:      catalog,
		config:       cfg,
	}
}

// CreateContract converts a confirmed booking into a lease contract and
// completes the booking. The room snapshot is taken here, at composition
// time, and its version rides into the occupancy compare-and-set; a
// concurrent conversion for the same room surfaces as ROOM_UNAVAILABLE for
// the operator to retry after a refresh.
func (c *ContractComposer) CreateContract(ctx context.Context, bookingID uuid.UUID, request *domain.CreateContractRequest) (*domain.Contract, error) {
	booking, err := c.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBookingNotFound(bookingID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if booking.Status != domain.BookingStatusConfirmed {
		return nil, customError.WrapPreconditionFailed(booking.BookingCode, booking.Status, domain.BookingStatusConfirmed)
	}

	// The room is never selectable independently once a booking exists.
	if request.RoomID != uuid.Nil && request.RoomID != booking.RoomID {
		return nil, customError.WrapRoomMismatch(request.RoomID.String(), booking.RoomID.String())
	}

	room, err := c.roomRepo.GetByID(ctx, booking.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRoomNotFound(booking.RoomID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	if !room.IsVacant() {
		return nil, customError.WrapRoomUnavailable(room.Name)
	}

	contract, prospective, err := c.compose(ctx, booking, room, request)
	if err != nil {
		return nil, err
	}

	conv := &domain.BookingConversion{
		Contract:    contract,
		BookingID:   booking.ID,
		Prospective: prospective,
		RoomVersion: room.UpdatedAt,
	}

	created, err := c.contractRepo.ConvertBooking(ctx, conv)
	if err != nil {
		switch {
		case errors.Is(err, customError.ErrRoomUnavailable):
			return nil, customError.WrapRoomUnavailable(room.Name)
		case errors.Is(err, customError.ErrPreconditionFailed):
			return nil, customError.WrapPreconditionFailed(booking.BookingCode, booking.Status, domain.BookingStatusConfirmed)
		case errors.Is(err, customError.ErrTenantUnavailable):
			return nil, customError.WrapTenantUnavailable(conv.Contract.TenantID.String())
		default:
			return nil, customError.WrapDatabaseError(err)
		}
	}

	return created, nil
}

// compose validates the request and fills every documented default: contract
// number generated when blank, rent from the room's current rate, deposit
// from the booking, end date one lease term after start.
func (c *ContractComposer) compose(ctx context.Context, booking *domain.Booking, room *domain.Room, request *domain.CreateContractRequest) (*domain.Contract, *domain.ProspectiveTenant, error) {
	now := time.Now()

	number := strings.TrimSpace(request.ContractNumber)
	if number == "" {
		number = utils.GenerateContractNumber(now)
	}

	if strings.TrimSpace(request.StartDate) == "" {
		return nil, nil, customError.WrapMissingField("start_date")
	}
	start, err := utils.ParseDate(request.StartDate)
	if err != nil {
		return nil, nil, customError.NewBusinessError(customError.ErrCodeValidation, "start_date must be YYYY-MM-DD", err)
	}

	end := utils.AddYearsClamped(start, c.config.Business.DefaultLeaseYears)
	if strings.TrimSpace(request.EndDate) != "" {
		end, err = utils.ParseDate(request.EndDate)
		if err != nil {
			return nil, nil, customError.NewBusinessError(customError.ErrCodeValidation, "end_date must be YYYY-MM-DD", err)
		}
	}
	if !end.After(start) {
		return nil, nil, customError.WrapInvalidDateRange(start.Format(utils.DateLayout), end.Format(utils.DateLayout))
	}

	signed := start
	if strings.TrimSpace(request.SignedDate) != "" {
		signed, err = utils.ParseDate(request.SignedDate)
		if err != nil {
			return nil, nil, customError.NewBusinessError(customError.ErrCodeValidation, "signed_date must be YYYY-MM-DD", err)
		}
	}

	rent := room.CurrentRate
	if request.MonthlyRent != nil {
		rent = *request.MonthlyRent
	}

	deposit := booking.Deposit
	if request.Deposit != nil {
		deposit = *request.Deposit
	}

	serviceIDs := request.ServiceIDs
	if serviceIDs == nil {
		catalog, err := c.catalog.Snapshot(ctx)
		if err != nil {
			return nil, nil, err
		}
		serviceIDs = DefaultPlan(catalog).IDs()
	} else if len(serviceIDs) > 0 {
		// An operator-edited plan is re-checked here so the exclusivity rule
		// holds no matter how the set was assembled client-side.
		catalog, err := c.catalog.Snapshot(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := ValidatePlanExclusivity(serviceIDs, catalog); err != nil {
			return nil, nil, err
		}
	}

	contract := &domain.Contract{
		ID:             uuid.New(),
		ContractNumber: number,
		BookingID:      booking.ID,
		RoomID:         booking.RoomID,
		SignedDate:     signed,
		StartDate:      start,
		EndDate:        end,
		MonthlyRent:    rent,
		Deposit:        deposit,
		ServiceIDs:     serviceIDs,
		Note:           request.Note,
	}

	// An explicitly chosen tenant is attached as-is; otherwise the conversion
	// creates one from the applicant fields. The composer never invents a
	// tenant id.
	if request.TenantID != nil {
		tenant, err := c.tenantRepo.GetByID(ctx, *request.TenantID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil, customError.NewBusinessError(customError.ErrCodeTenantNotFound, "selected tenant not found", customError.ErrTenantNotFound)
			}
			return nil, nil, customError.WrapDatabaseError(err)
		}
		if tenant.HasRoom() {
			return nil, nil, customError.WrapTenantUnavailable(tenant.ID.String())
		}
		contract.TenantID = tenant.ID
		return contract, nil, nil
	}

	prospective := &domain.ProspectiveTenant{
		FullName: booking.ApplicantName,
		Phone:    booking.ApplicantPhone,
		Email:    booking.ApplicantEmail,
	}
	return contract, prospective, nil
}
