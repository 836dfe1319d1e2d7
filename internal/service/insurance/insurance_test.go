package insurance

import (
	"context"
	"errors"
	"testing"
	"time"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/insurance"
	xerrors "insurtrack/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	created   *insurance.CreateInsuranceRequest
	createErr error

	renewalFrom insurance.Date
	renewalTo   insurance.Date
	renewals    []insurance.Insurance
}

func (f *fakeRepo) Create(ctx context.Context, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = req
	return &insurance.Insurance{ID: 1, CustomerID: req.CustomerID, Type: req.Type}, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*insurance.Insurance, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context) ([]insurance.Insurance, error) { return nil, nil }

func (f *fakeRepo) ListByCustomer(ctx context.Context, customerID int64) ([]insurance.Insurance, error) {
	return nil, nil
}

func (f *fakeRepo) ListUpcomingRenewals(ctx context.Context, from, to insurance.Date) ([]insurance.Insurance, error) {
	f.renewalFrom = from
	f.renewalTo = to
	return f.renewals, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	return &insurance.Insurance{ID: id, Type: req.Type}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeCustomers struct {
	known map[int64]bool
	err   error
}

func (f *fakeCustomers) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.known[id] {
		return nil, xerrors.ErrNotFound
	}
	return &customer.Customer{ID: id}, nil
}

func TestCreateInsuranceRequiresExistingCustomer(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewInsuranceService(repo, &fakeCustomers{known: map[int64]bool{}}, zap.NewNop())

	_, err := svc.CreateInsurance(context.Background(), &insurance.CreateInsuranceRequest{
		CustomerID: 42,
		Type:       insurance.TypeAuto,
	})

	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Nil(t, repo.created, "no policy row may be written for a missing customer")
}

func TestCreateInsuranceVerifyFailurePropagates(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewInsuranceService(repo, &fakeCustomers{err: errors.New("db down")}, zap.NewNop())

	_, err := svc.CreateInsurance(context.Background(), &insurance.CreateInsuranceRequest{CustomerID: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, xerrors.ErrNotFound)
	assert.Nil(t, repo.created)
}

func TestCreateInsuranceSucceedsForKnownCustomer(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewInsuranceService(repo, &fakeCustomers{known: map[int64]bool{7: true}}, zap.NewNop())

	ins, err := svc.CreateInsurance(context.Background(), &insurance.CreateInsuranceRequest{
		CustomerID: 7,
		Type:       insurance.TypeHealth,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), ins.CustomerID)
	require.NotNil(t, repo.created)
}

func TestUpcomingRenewalsWindow(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewInsuranceService(repo, &fakeCustomers{}, zap.NewNop())

	_, err := svc.UpcomingRenewals(context.Background(), 14)
	require.NoError(t, err)

	today := insurance.DateOf(time.Now())
	assert.Equal(t, today.String(), repo.renewalFrom.String())
	assert.Equal(t, insurance.DateOf(today.AddDate(0, 0, 14)).String(), repo.renewalTo.String())
}

func TestUpcomingRenewalsRejectsNonPositiveDays(t *testing.T) {
	svc := NewInsuranceService(&fakeRepo{}, &fakeCustomers{}, zap.NewNop())

	for _, days := range []int{0, -3} {
		_, err := svc.UpcomingRenewals(context.Background(), days)
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput, "days=%d", days)
	}
}
