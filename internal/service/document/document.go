// internal/service/document/document.go
package document

import (
	"context"
	"fmt"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/document"
	xerrors "insurtrack/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, req *document.CreateDocumentRequest) (*document.Document, error)
	FindByID(ctx context.Context, id int64) (*document.Document, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]document.Document, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerFinder verifies the owning customer exists.
type CustomerFinder interface {
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
}

type DocumentService struct {
	repo      Repository
	customers CustomerFinder
	logger    *zap.Logger
}

func NewDocumentService(repo Repository, customers CustomerFinder, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		repo:      repo,
		customers: customers,
		logger:    logger,
	}
}

// CreateDocument records document metadata after verifying its customer.
func (s *DocumentService) CreateDocument(ctx context.Context, req *document.CreateDocumentRequest) (*document.Document, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %d: %w", req.CustomerID, xerrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}

	d, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to create document", zap.Error(err))
		return nil, err
	}

	s.logger.Info("document created",
		zap.Int64("document_id", d.ID),
		zap.Int64("customer_id", d.CustomerID),
		zap.String("filename", d.Filename),
	)

	return d, nil
}

// GetDocument retrieves document metadata by ID.
func (s *DocumentService) GetDocument(ctx context.Context, id int64) (*document.Document, error) {
	return s.repo.FindByID(ctx, id)
}

// ListCustomerDocuments retrieves the documents scoped to one customer.
func (s *DocumentService) ListCustomerDocuments(ctx context.Context, customerID int64) ([]document.Document, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// DeleteDocument removes document metadata.
func (s *DocumentService) DeleteDocument(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", zap.Int64("document_id", id))
	return nil
}
