// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"insurtrack/internal/domain/customer"
	xerrors "insurtrack/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a new customer and fills in the server-assigned fields.
func (r *CustomerRepository) Create(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	query := `
		INSERT INTO customers (name, email, phone, address, notes)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id, created_at
	`

	c := &customer.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}

	err := r.db.QueryRow(ctx, query,
		req.Name, req.Email, req.Phone, req.Address, req.Notes,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return c, nil
}

// FindByID retrieves a customer by ID.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(address, ''), COALESCE(notes, ''), created_at
		FROM customers
		WHERE id = $1
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}

// List retrieves every customer ordered by id.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(address, ''), COALESCE(notes, ''), created_at
		FROM customers
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	return customers, nil
}

// Update overwrites every writable field of the customer.
func (r *CustomerRepository) Update(ctx context.Context, id int64, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	query := `
		UPDATE customers
		SET name = $1, email = NULLIF($2, ''), phone = NULLIF($3, ''),
		    address = NULLIF($4, ''), notes = NULLIF($5, '')
		WHERE id = $6
		RETURNING id, name, COALESCE(email, ''), COALESCE(phone, ''),
		          COALESCE(address, ''), COALESCE(notes, ''), created_at
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query,
		req.Name, req.Email, req.Phone, req.Address, req.Notes, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &c, nil
}

// Delete removes a customer. Policies and documents cascade in the schema.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
