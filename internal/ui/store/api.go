// Package store holds the view-scoped state behind the terminal UI: a
// fetched list plus its loading/error flags. Each store exclusively owns its
// list; async results are fenced by a generation counter so a response that
// lands after its view closed is discarded, never applied.
package store

import (
	"context"
	"errors"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/insurance"
)

// ErrMutationInFlight is returned when a create/update/delete is requested
// for a record that already has one in flight. The server stays the only
// arbiter of the winning request; this just stops accidental doubles.
var ErrMutationInFlight = errors.New("a mutation for this record is already in flight")

// ConfirmFunc is the confirmation gate for destructive operations. It must
// return true for the call to be issued at all.
type ConfirmFunc func() bool

// CustomerAPI is the slice of the API client the customer store needs.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
	CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req *customer.CreateCustomerRequest) (*customer.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// InsuranceAPI is the slice of the API client the insurance store needs.
type InsuranceAPI interface {
	CustomerInsurances(ctx context.Context, customerID int64) ([]insurance.Insurance, error)
	CreateInsurance(ctx context.Context, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error)
	UpdateInsurance(ctx context.Context, id int64, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error)
	DeleteInsurance(ctx context.Context, id int64) error
}
