package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrPreconditionFailed = errors.New("booking is not in the required status")
	ErrRoomUnavailable    = errors.New("room is no longer available")
	ErrRoomMismatch       = errors.New("contract room does not match booking room")
	ErrInvalidAmount      = errors.New("refund amount out of range")
	ErrMissingReason      = errors.New("refund reason is required")
	ErrInvalidReason      = errors.New("refund reason is not a known code")
	ErrServiceConflict    = errors.New("service plan holds conflicting services")
	ErrMissingField       = errors.New("required contract field is missing")
	ErrInvalidDateRange   = errors.New("contract end date must be after start date")
	ErrTenantUnavailable  = errors.New("tenant already has a room assigned")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeBookingNotFound    = "BOOKING_NOT_FOUND"
	ErrCodeRoomNotFound       = "ROOM_NOT_FOUND"
	ErrCodeTenantNotFound     = "TENANT_NOT_FOUND"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodePreconditionFailed = "PRECONDITION_FAILED"
	ErrCodeRoomUnavailable    = "ROOM_UNAVAILABLE"
	ErrCodeRoomMismatch       = "ROOM_MISMATCH"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeMissingReason      = "MISSING_REASON"
	ErrCodeInvalidReason      = "INVALID_REASON"
	ErrCodeServiceConflict    = "SERVICE_CONFLICT"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidDateRange   = "INVALID_DATE_RANGE"
	ErrCodeTenantUnavailable  = "TENANT_UNAVAILABLE"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapBookingNotFound(bookingID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookingNotFound,
		fmt.Sprintf("Booking %s not found", bookingID),
		ErrBookingNotFound,
	)
}

func WrapRoomNotFound(roomID string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomNotFound,
		fmt.Sprintf("Room %s not found", roomID),
		ErrRoomNotFound,
	)
}

func WrapInvalidTransition(current string, event string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		fmt.Sprintf("Cannot %s a booking in status %q", event, current),
		ErrInvalidTransition,
	)
}

func WrapPreconditionFailed(bookingID, current, required string) *BusinessError {
	return NewBusinessError(
		ErrCodePreconditionFailed,
		fmt.Sprintf("Booking %s is %q, expected %q", bookingID, current, required),
		ErrPreconditionFailed,
	)
}

func WrapRoomUnavailable(roomID string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomUnavailable,
		fmt.Sprintf("Room %s is no longer vacant, refresh and retry", roomID),
		ErrRoomUnavailable,
	)
}

func WrapRoomMismatch(requested, booked string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomMismatch,
		fmt.Sprintf("Contract targets room %s but the booking reserved room %s", requested, booked),
		ErrRoomMismatch,
	)
}

func WrapInvalidAmount(amount, deposit string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Refund amount %s must be between 0 and the deposit %s", amount, deposit),
		ErrInvalidAmount,
	)
}

func WrapMissingReason() *BusinessError {
	return NewBusinessError(
		ErrCodeMissingReason,
		"A refund reason code is required",
		ErrMissingReason,
	)
}

func WrapInvalidReason(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidReason,
		fmt.Sprintf("Refund reason %q is not a known code", reason),
		ErrInvalidReason,
	)
}

func WrapServiceConflict(group string) *BusinessError {
	return NewBusinessError(
		ErrCodeServiceConflict,
		fmt.Sprintf("Service plan holds more than one %q service", group),
		ErrServiceConflict,
	)
}

func WrapMissingField(field string) *BusinessError {
	return NewBusinessError(
		ErrCodeMissingField,
		fmt.Sprintf("Field %q is required", field),
		ErrMissingField,
	)
}

func WrapInvalidDateRange(start, end string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("End date %s must be after start date %s", end, start),
		ErrInvalidDateRange,
	)
}

func WrapTenantUnavailable(tenantID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTenantUnavailable,
		fmt.Sprintf("Tenant %s already has a room assigned", tenantID),
		ErrTenantUnavailable,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

// CodeOf extracts the business error code, or DATABASE_ERROR when the error
// was never classified at an operation boundary.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ErrCodeDatabaseError
}
