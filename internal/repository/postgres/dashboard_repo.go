// internal/repository/postgres/dashboard_repo.go
package postgres

import (
	"context"
	"fmt"

	"insurtrack/internal/domain/dashboard"
	"insurtrack/internal/domain/insurance"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DashboardRepository struct {
	db *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats computes the aggregate counters in one round trip. Renewals are
// counted over [from, to] inclusive.
func (r *DashboardRepository) Stats(ctx context.Context, from, to insurance.Date) (*dashboard.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM insurances),
			(SELECT COUNT(*) FROM insurances WHERE renewal_date BETWEEN $1 AND $2)
	`

	var s dashboard.Stats
	err := r.db.QueryRow(ctx, query, from, to).Scan(
		&s.TotalCustomers, &s.ActivePolicies, &s.UpcomingRenewals,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	return &s, nil
}
