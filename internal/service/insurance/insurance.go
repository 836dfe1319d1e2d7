// internal/service/insurance/insurance.go
package insurance

import (
	"context"
	"fmt"
	"time"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/insurance"
	xerrors "insurtrack/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error)
	FindByID(ctx context.Context, id int64) (*insurance.Insurance, error)
	List(ctx context.Context) ([]insurance.Insurance, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]insurance.Insurance, error)
	ListUpcomingRenewals(ctx context.Context, from, to insurance.Date) ([]insurance.Insurance, error)
	Update(ctx context.Context, id int64, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerFinder verifies the owning customer exists before a policy is
// created. Every policy must reference an existing customer.
type CustomerFinder interface {
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
}

type InsuranceService struct {
	repo      Repository
	customers CustomerFinder
	logger    *zap.Logger
}

func NewInsuranceService(repo Repository, customers CustomerFinder, logger *zap.Logger) *InsuranceService {
	return &InsuranceService{
		repo:      repo,
		customers: customers,
		logger:    logger,
	}
}

// CreateInsurance creates a policy after verifying its customer exists.
func (s *InsuranceService) CreateInsurance(ctx context.Context, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %d: %w", req.CustomerID, xerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}

	ins, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to create insurance", zap.Error(err))
		return nil, err
	}

	s.logger.Info("insurance created",
		zap.Int64("insurance_id", ins.ID),
		zap.Int64("customer_id", ins.CustomerID),
		zap.String("type", ins.Type),
	)

	return ins, nil
}

// GetInsurance retrieves a policy by ID.
func (s *InsuranceService) GetInsurance(ctx context.Context, id int64) (*insurance.Insurance, error) {
	return s.repo.FindByID(ctx, id)
}

// ListInsurances retrieves every policy.
func (s *InsuranceService) ListInsurances(ctx context.Context) ([]insurance.Insurance, error) {
	return s.repo.List(ctx)
}

// ListCustomerInsurances retrieves the policies scoped to one customer.
func (s *InsuranceService) ListCustomerInsurances(ctx context.Context, customerID int64) ([]insurance.Insurance, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// UpcomingRenewals retrieves policies renewing within the next `days` days.
func (s *InsuranceService) UpcomingRenewals(ctx context.Context, days int) ([]insurance.Insurance, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", xerrors.ErrInvalidInput)
	}

	today := insurance.DateOf(time.Now())
	end := insurance.DateOf(today.AddDate(0, 0, days))
	return s.repo.ListUpcomingRenewals(ctx, today, end)
}

// UpdateInsurance overwrites every writable field of the policy.
func (s *InsuranceService) UpdateInsurance(ctx context.Context, id int64, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	ins, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("insurance updated", zap.Int64("insurance_id", ins.ID))
	return ins, nil
}

// DeleteInsurance removes a policy.
func (s *InsuranceService) DeleteInsurance(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("insurance deleted", zap.Int64("insurance_id", id))
	return nil
}
