package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Refund reason codes are a closed enumeration; the ledger stores the code
// verbatim and does not interpret it.
const (
	RefundReasonCustomerCancel  = "customer_cancel"
	RefundReasonRoomUnavailable = "room_unavailable"
	RefundReasonMaintenance     = "maintenance_issue"
	RefundReasonPolicyViolation = "policy_violation"
	RefundReasonDuplicate       = "duplicate_booking"
	RefundReasonOther           = "other"
)

var refundReasons = map[string]struct{}{
	RefundReasonCustomerCancel:  {},
	RefundReasonRoomUnavailable: {},
	RefundReasonMaintenance:     {},
	RefundReasonPolicyViolation: {},
	RefundReasonDuplicate:       {},
	RefundReasonOther:           {},
}

func ValidRefundReason(code string) bool {
	_, ok := refundReasons[code]
	return ok
}

// RefundRecord is the financial disposition of a cancelled booking's deposit.
// Retained is always derived, so Refunded + Retained == Deposit holds for
// every record constructed through the ledger.
type RefundRecord struct {
	BookingID  uuid.UUID       `json:"booking_id"`
	Deposit    decimal.Decimal `json:"deposit"`
	Refunded   decimal.Decimal `json:"refunded"`
	Retained   decimal.Decimal `json:"retained"`
	Reason     string          `json:"reason"`
	Note       string          `json:"note"`
	RecordedAt time.Time       `json:"recorded_at"`
}
