// internal/service/customer/customer.go
package customer

import (
	"context"
	"fmt"

	"insurtrack/internal/domain/customer"

	"go.uber.org/zap"
)

// Repository is the persistence surface the service needs. The postgres
// implementation lives in internal/repository/postgres.
type Repository interface {
	Create(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error)
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
	List(ctx context.Context) ([]customer.Customer, error)
	Update(ctx context.Context, id int64, req *customer.CreateCustomerRequest) (*customer.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type CustomerService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCustomerService(repo Repository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logger,
	}
}

// CreateCustomer creates a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	c, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("name", c.Name),
	)

	return c, nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// ListCustomers retrieves the full customer list.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer overwrites every writable field of the customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	c, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer updated", zap.Int64("customer_id", c.ID))
	return c, nil
}

// DeleteCustomer removes a customer and, through the schema, its policies
// and documents.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}
