package insurance

import "time"

// Policy types accepted by the API.
const (
	TypeLife       = "life"
	TypeHealth     = "health"
	TypeAuto       = "auto"
	TypeProperty   = "property"
	TypeDisability = "disability"
	TypeLiability  = "liability"
	TypeOther      = "other"
)

// Types lists every accepted policy type, in display order.
var Types = []string{
	TypeLife, TypeHealth, TypeAuto, TypeProperty,
	TypeDisability, TypeLiability, TypeOther,
}

// ValidType reports whether t is one of the accepted policy types.
func ValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// Insurance is a policy owned by exactly one customer. customer_id is
// immutable after creation.
type Insurance struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customer_id"`
	Type            string    `json:"type"`
	RenewalDate     Date      `json:"renewal_date"`
	CoverageDetails string    `json:"coverage_details"`
	PremiumAmount   float64   `json:"premium_amount"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateInsuranceRequest carries the writable policy fields. Updates reuse
// the same shape and overwrite every writable field.
type CreateInsuranceRequest struct {
	CustomerID      int64   `json:"customer_id" binding:"required"`
	Type            string  `json:"type" binding:"required,oneof=life health auto property disability liability other"`
	RenewalDate     Date    `json:"renewal_date" binding:"required"`
	CoverageDetails string  `json:"coverage_details" binding:"required"`
	PremiumAmount   float64 `json:"premium_amount" binding:"gte=0"`
	Notes           string  `json:"notes"`
}
