package form

import "insurtrack/internal/domain/customer"

// CustomerDraft is the editable copy of a customer's writable fields.
type CustomerDraft struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// CustomerForm edits one customer record.
type CustomerForm = Form[CustomerDraft]

// NewCustomerDraft seeds a draft from an existing record, or an empty draft
// when existing is nil.
func NewCustomerDraft(existing *customer.Customer) CustomerDraft {
	if existing == nil {
		return CustomerDraft{}
	}
	return CustomerDraft{
		Name:    existing.Name,
		Email:   existing.Email,
		Phone:   existing.Phone,
		Address: existing.Address,
		Notes:   existing.Notes,
	}
}

// ValidateCustomerDraft enforces the required customer fields.
func ValidateCustomerDraft(d CustomerDraft) error {
	if d.Name == "" {
		return &ValidationError{Fields: []string{"name"}}
	}
	return nil
}

// Request converts the draft to the wire shape.
func (d CustomerDraft) Request() *customer.CreateCustomerRequest {
	return &customer.CreateCustomerRequest{
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Address: d.Address,
		Notes:   d.Notes,
	}
}
