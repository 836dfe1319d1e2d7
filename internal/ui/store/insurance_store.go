package store

import (
	"context"
	"sync"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/insurance"

	"go.uber.org/zap"
)

// InsuranceStore owns the per-customer policy list. It is scoped to exactly
// one customer at a time: Open re-initializes it for that customer and Close
// discards everything, so nothing is cached across opens. Every successful
// mutation refetches the scoped list.
type InsuranceStore struct {
	api    InsuranceAPI
	logger *zap.Logger

	mu       sync.Mutex
	gen      uint64
	open     bool
	cust     customer.Customer
	list     []insurance.Insurance
	loading  bool
	lastErr  error
	inflight map[int64]bool
}

func NewInsuranceStore(api InsuranceAPI, logger *zap.Logger) *InsuranceStore {
	return &InsuranceStore{
		api:      api,
		logger:   logger,
		inflight: map[int64]bool{},
	}
}

// Open scopes the store to one customer, discards any previous state and
// fetches that customer's policies.
func (s *InsuranceStore) Open(ctx context.Context, cust customer.Customer) error {
	s.mu.Lock()
	s.gen++
	s.open = true
	s.cust = cust
	s.list = nil
	s.loading = false
	s.lastErr = nil
	s.inflight = map[int64]bool{}
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Close discards the scoped data and invalidates in-flight results.
func (s *InsuranceStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.open = false
	s.cust = customer.Customer{}
	s.list = nil
	s.loading = false
	s.lastErr = nil
}

// Refresh fetches the scoped policy list. A result arriving after the view
// closed (or re-opened for another customer) is discarded.
func (s *InsuranceStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	customerID := s.cust.ID
	s.loading = true
	s.mu.Unlock()

	list, err := s.api.CustomerInsurances(ctx, customerID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return nil // view moved on; drop the result
	}

	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}

	s.list = list
	s.lastErr = nil
	return nil
}

// Create submits a new policy bound to the open customer, then refetches the
// scoped list. The store never constructs a policy without a bound customer.
func (s *InsuranceStore) Create(ctx context.Context, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return nil, ErrMutationInFlight
	}
	req.CustomerID = s.cust.ID
	s.mu.Unlock()

	if err := s.acquire(0); err != nil {
		return nil, err
	}
	defer s.release(0)

	created, err := s.api.CreateInsurance(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refetch after create failed", zap.Error(err))
	}
	return created, nil
}

// Update overwrites a policy, then refetches the scoped list.
func (s *InsuranceStore) Update(ctx context.Context, id int64, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	s.mu.Lock()
	req.CustomerID = s.cust.ID
	s.mu.Unlock()

	if err := s.acquire(id); err != nil {
		return nil, err
	}
	defer s.release(id)

	updated, err := s.api.UpdateInsurance(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refetch after update failed", zap.Error(err))
	}
	return updated, nil
}

// Remove deletes a policy behind a confirmation gate, then refetches. A
// declined gate issues no call and reports (false, nil).
func (s *InsuranceStore) Remove(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	if confirm != nil && !confirm() {
		return false, nil
	}

	if err := s.acquire(id); err != nil {
		return false, err
	}
	defer s.release(id)

	if err := s.api.DeleteInsurance(ctx, id); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return false, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refetch after delete failed", zap.Error(err))
	}
	return true, nil
}

// Insurances returns a copy of the scoped list.
func (s *InsuranceStore) Insurances() []insurance.Insurance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]insurance.Insurance, len(s.list))
	copy(out, s.list)
	return out
}

// Customer returns the customer the store is scoped to.
func (s *InsuranceStore) Customer() customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cust
}

func (s *InsuranceStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *InsuranceStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *InsuranceStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *InsuranceStore) acquire(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return ErrMutationInFlight
	}
	s.inflight[id] = true
	return nil
}

func (s *InsuranceStore) release(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}
