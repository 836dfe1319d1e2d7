// internal/repository/postgres/insurance_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"insurtrack/internal/domain/insurance"
	xerrors "insurtrack/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InsuranceRepository struct {
	db *pgxpool.Pool
}

func NewInsuranceRepository(db *pgxpool.Pool) *InsuranceRepository {
	return &InsuranceRepository{db: db}
}

const insuranceColumns = `id, customer_id, type, renewal_date,
	COALESCE(coverage_details, ''), COALESCE(premium_amount, 0),
	COALESCE(notes, ''), created_at`

func scanInsurance(row pgx.Row) (*insurance.Insurance, error) {
	var ins insurance.Insurance
	err := row.Scan(
		&ins.ID, &ins.CustomerID, &ins.Type, &ins.RenewalDate,
		&ins.CoverageDetails, &ins.PremiumAmount, &ins.Notes, &ins.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

// Create inserts a new policy and fills in the server-assigned fields.
func (r *InsuranceRepository) Create(ctx context.Context, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	query := `
		INSERT INTO insurances (customer_id, type, renewal_date, coverage_details, premium_amount, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING ` + insuranceColumns

	ins, err := scanInsurance(r.db.QueryRow(ctx, query,
		req.CustomerID, req.Type, req.RenewalDate, req.CoverageDetails,
		req.PremiumAmount, req.Notes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create insurance: %w", err)
	}

	return ins, nil
}

// FindByID retrieves a policy by ID.
func (r *InsuranceRepository) FindByID(ctx context.Context, id int64) (*insurance.Insurance, error) {
	query := `SELECT ` + insuranceColumns + ` FROM insurances WHERE id = $1`

	ins, err := scanInsurance(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find insurance: %w", err)
	}

	return ins, nil
}

// List retrieves every policy ordered by id.
func (r *InsuranceRepository) List(ctx context.Context) ([]insurance.Insurance, error) {
	query := `SELECT ` + insuranceColumns + ` FROM insurances ORDER BY id`
	return r.queryMany(ctx, query)
}

// ListByCustomer retrieves the policies scoped to one customer.
func (r *InsuranceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]insurance.Insurance, error) {
	query := `SELECT ` + insuranceColumns + ` FROM insurances WHERE customer_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, customerID)
}

// ListUpcomingRenewals retrieves policies whose renewal date falls within
// [from, to] inclusive.
func (r *InsuranceRepository) ListUpcomingRenewals(ctx context.Context, from, to insurance.Date) ([]insurance.Insurance, error) {
	query := `SELECT ` + insuranceColumns + ` FROM insurances
		WHERE renewal_date BETWEEN $1 AND $2 ORDER BY renewal_date`
	return r.queryMany(ctx, query, from, to)
}

func (r *InsuranceRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]insurance.Insurance, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurances: %w", err)
	}
	defer rows.Close()

	insurances := []insurance.Insurance{}
	for rows.Next() {
		ins, err := scanInsurance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insurance: %w", err)
		}
		insurances = append(insurances, *ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read insurances: %w", err)
	}

	return insurances, nil
}

// Update overwrites every writable field of the policy. The owning customer
// is immutable after creation and is not touched here.
func (r *InsuranceRepository) Update(ctx context.Context, id int64, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	query := `
		UPDATE insurances
		SET type = $1, renewal_date = $2, coverage_details = $3,
		    premium_amount = $4, notes = NULLIF($5, '')
		WHERE id = $6
		RETURNING ` + insuranceColumns

	ins, err := scanInsurance(r.db.QueryRow(ctx, query,
		req.Type, req.RenewalDate, req.CoverageDetails, req.PremiumAmount,
		req.Notes, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update insurance: %w", err)
	}

	return ins, nil
}

// Delete removes a policy.
func (r *InsuranceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM insurances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete insurance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
