package dashboard

// Stats are the aggregate counters shown on the dashboard. All values are
// computed server-side and read-only.
type Stats struct {
	TotalCustomers   int64 `json:"total_customers"`
	ActivePolicies   int64 `json:"active_policies"`
	UpcomingRenewals int64 `json:"upcoming_renewals"`
}
