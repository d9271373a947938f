package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/internal/service"
	customError "github.com/nhatro-labs/booking-engine/pkg/errors"
	"github.com/nhatro-labs/booking-engine/pkg/response"
)

type BookingHandler struct {
	bookings  *service.BookingService
	composer  *service.ContractComposer
	resolver  *service.TenantResolver
	validator *validator.Validate
}

func NewBookingHandler(bookings *service.BookingService, composer *service.ContractComposer, resolver *service.TenantResolver) *BookingHandler {
	return &BookingHandler{
		bookings:  bookings,
		composer:  composer,
		resolver:  resolver,
		validator: validator.New(),
	}
}

// statusForCode maps the business error taxonomy onto HTTP statuses. Rule
// violations and conflicts are 409 so the front office renders a blocking
// message with a refresh suggestion; input problems are 400.
func statusForCode(code string) int {
	switch code {
	case customError.ErrCodeBookingNotFound, customError.ErrCodeRoomNotFound, customError.ErrCodeTenantNotFound:
		return http.StatusNotFound
	case customError.ErrCodeInvalidTransition, customError.ErrCodePreconditionFailed,
		customError.ErrCodeRoomUnavailable, customError.ErrCodeTenantUnavailable:
		return http.StatusConflict
	case customError.ErrCodeInvalidAmount, customError.ErrCodeMissingReason,
		customError.ErrCodeInvalidReason, customError.ErrCodeServiceConflict,
		customError.ErrCodeMissingField, customError.ErrCodeInvalidDateRange,
		customError.ErrCodeRoomMismatch, customError.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeBusinessError(w http.ResponseWriter, err error) {
	code := customError.CodeOf(err)
	response.Error(w, statusForCode(code), code, err.Error(), err)
}

func bookingID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

// List handles GET /bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.BookingFilter{
		Status: r.URL.Query().Get("status"),
		Block:  r.URL.Query().Get("block"),
		Search: r.URL.Query().Get("q"),
	}

	bookings, err := h.bookings.List(r.Context(), filter)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, bookings)
}

// Get handles GET /bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid booking id", err)
		return
	}

	booking, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, booking)
}

// Create handles POST /bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "validation failed", err)
		return
	}

	booking, err := h.bookings.Create(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, booking)
}

// Confirm handles POST /bookings/{id}/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid booking id", err)
		return
	}

	outcome, err := h.bookings.Confirm(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, outcome)
}

// Cancel handles POST /bookings/{id}/cancel — full refund, then cancellation.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid booking id", err)
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	outcome, record, err := h.bookings.Cancel(r.Context(), id, body.Note)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"outcome": outcome,
		"refund":  record,
	})
}

// Refund handles POST /bookings/{id}/refund
func (h *BookingHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid booking id", err)
		return
	}

	var request domain.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "validation failed", err)
		return
	}

	outcome, record, err := h.bookings.Refund(r.Context(), id, &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"outcome": outcome,
		"refund":  record,
	})
}

// CreateContract handles POST /bookings/{id}/contract
func (h *BookingHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid booking id", err)
		return
	}

	var request domain.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "validation failed", err)
		return
	}

	contract, err := h.composer.CreateContract(r.Context(), id, &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, contract)
}

// Delete handles DELETE /bookings/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid booking id", err)
		return
	}

	if err := h.bookings.Delete(r.Context(), id); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.NoContent(w)
}

// TenantMatch handles GET /bookings/{id}/tenant-match, surfacing the resolver
// outcome so the operator can confirm or override before conversion.
func (h *BookingHandler) TenantMatch(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		response.BadRequest(w, customError.ErrCodeValidation, "invalid booking id", err)
		return
	}

	selection, err := h.resolver.Resolve(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"selection": selection,
		// A name-only match is advisory; the operator must explicitly pick
		// the tenant for it to be attached.
		"requires_confirmation": selection.NameOnly(),
	})
}
