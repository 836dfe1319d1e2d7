package form

import (
	"time"

	"insurtrack/internal/domain/insurance"
)

// InsuranceDraft is the editable copy of a policy's writable fields. The
// renewal date is held as a date-only string for editing, independent of any
// time-of-day component in storage.
type InsuranceDraft struct {
	Type            string
	RenewalDate     string // YYYY-MM-DD
	CoverageDetails string
	PremiumAmount   float64
	Notes           string
}

// InsuranceForm edits one policy record.
type InsuranceForm = Form[InsuranceDraft]

// NewInsuranceDraft seeds a draft from an existing policy, or a default
// draft (zero premium, empty text) when existing is nil.
func NewInsuranceDraft(existing *insurance.Insurance) InsuranceDraft {
	if existing == nil {
		return InsuranceDraft{}
	}
	return InsuranceDraft{
		Type:            existing.Type,
		RenewalDate:     existing.RenewalDate.String(),
		CoverageDetails: existing.CoverageDetails,
		PremiumAmount:   existing.PremiumAmount,
		Notes:           existing.Notes,
	}
}

// ValidateInsuranceDraft enforces the required policy fields: a known type,
// a parseable renewal date, coverage details and a non-negative premium.
func ValidateInsuranceDraft(d InsuranceDraft) error {
	var missing []string
	if !insurance.ValidType(d.Type) {
		missing = append(missing, "type")
	}
	if _, err := time.Parse("2006-01-02", d.RenewalDate); err != nil {
		missing = append(missing, "renewal_date")
	}
	if d.CoverageDetails == "" {
		missing = append(missing, "coverage_details")
	}
	if d.PremiumAmount < 0 {
		missing = append(missing, "premium_amount")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Request converts the draft to the wire shape. The owning customer id is
// bound by the insurance store, never by the form.
func (d InsuranceDraft) Request() (*insurance.CreateInsuranceRequest, error) {
	t, err := time.Parse("2006-01-02", d.RenewalDate)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"renewal_date"}}
	}
	return &insurance.CreateInsuranceRequest{
		Type:            d.Type,
		RenewalDate:     insurance.DateOf(t),
		CoverageDetails: d.CoverageDetails,
		PremiumAmount:   d.PremiumAmount,
		Notes:           d.Notes,
	}, nil
}
