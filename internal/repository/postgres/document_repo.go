// internal/repository/postgres/document_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"insurtrack/internal/domain/document"
	xerrors "insurtrack/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentRepository struct {
	db *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts document metadata and fills in the server-assigned fields.
func (r *DocumentRepository) Create(ctx context.Context, req *document.CreateDocumentRequest) (*document.Document, error) {
	query := `
		INSERT INTO documents (customer_id, insurance_id, filename, file_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	d := &document.Document{
		CustomerID:  req.CustomerID,
		InsuranceID: req.InsuranceID,
		Filename:    req.Filename,
		FilePath:    req.FilePath,
	}

	err := r.db.QueryRow(ctx, query,
		req.CustomerID, req.InsuranceID, req.Filename, req.FilePath,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return d, nil
}

// FindByID retrieves a document by ID.
func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (*document.Document, error) {
	query := `
		SELECT id, customer_id, insurance_id, filename, file_path, created_at
		FROM documents
		WHERE id = $1
	`

	var d document.Document
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CustomerID, &d.InsuranceID, &d.Filename, &d.FilePath, &d.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &d, nil
}

// ListByCustomer retrieves the documents scoped to one customer.
func (r *DocumentRepository) ListByCustomer(ctx context.Context, customerID int64) ([]document.Document, error) {
	query := `
		SELECT id, customer_id, insurance_id, filename, file_path, created_at
		FROM documents
		WHERE customer_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := []document.Document{}
	for rows.Next() {
		var d document.Document
		if err := rows.Scan(&d.ID, &d.CustomerID, &d.InsuranceID, &d.Filename, &d.FilePath, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return documents, nil
}

// Delete removes document metadata.
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
