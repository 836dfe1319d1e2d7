package store

import (
	"context"
	"sync"

	"insurtrack/internal/domain/customer"

	"go.uber.org/zap"
)

// CustomerStore owns the customer list view: the full fetched list, the
// active search term and the derived filtered view. Mutations refetch the
// list after a confirmed server response; local state is never updated
// speculatively.
type CustomerStore struct {
	api    CustomerAPI
	logger *zap.Logger

	mu       sync.Mutex
	gen      uint64
	list     []customer.Customer
	term     string
	filtered []customer.Customer
	loading  bool
	lastErr  error
	inflight map[int64]bool
}

func NewCustomerStore(api CustomerAPI, logger *zap.Logger) *CustomerStore {
	return &CustomerStore{
		api:      api,
		logger:   logger,
		filtered: []customer.Customer{},
		inflight: map[int64]bool{},
	}
}

// Refresh fetches the full customer list and replaces the local list
// atomically. On failure the previous list is left untouched and the error
// flag is set. A result arriving after Reset is discarded.
func (s *CustomerStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	list, err := s.api.ListCustomers(ctx)

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
	s.filtered = FilterCustomers(s.list, s.term)
	s.lastErr = nil
	return nil
}

// SetSearchTerm recomputes the filtered view synchronously against the
// current list.
func (s *CustomerStore) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = term
	s.filtered = FilterCustomers(s.list, term)
}

// Create submits a new customer and refetches the list on success. On
// failure the list is unchanged and the error is returned to the calling
// form for inline display.
func (s *CustomerStore) Create(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if err := s.acquire(0); err != nil {
		return nil, err
	}
	defer s.release(0)

	created, err := s.api.CreateCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refetch after create failed", zap.Error(err))
	}
	return created, nil
}

// Update overwrites a customer and refetches the list on success.
func (s *CustomerStore) Update(ctx context.Context, id int64, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if err := s.acquire(id); err != nil {
		return nil, err
	}
	defer s.release(id)

	updated, err := s.api.UpdateCustomer(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refetch after update failed", zap.Error(err))
	}
	return updated, nil
}

// Remove deletes a customer behind a confirmation gate. A declined gate
// issues no call and reports (false, nil). On failure the list is unchanged.
func (s *CustomerStore) Remove(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	if confirm != nil && !confirm() {
		return false, nil
	}

	if err := s.acquire(id); err != nil {
		return false, err
	}
	defer s.release(id)

	if err := s.api.DeleteCustomer(ctx, id); err != nil {
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

// Reset clears the store and invalidates every in-flight operation.
func (s *CustomerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.list = nil
	s.term = ""
	s.filtered = []customer.Customer{}
	s.loading = false
	s.lastErr = nil
}

// Customers returns a copy of the filtered view.
func (s *CustomerStore) Customers() []customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]customer.Customer, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// All returns a copy of the unfiltered list.
func (s *CustomerStore) All() []customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]customer.Customer, len(s.list))
	copy(out, s.list)
	return out
}

func (s *CustomerStore) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

func (s *CustomerStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CustomerStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// acquire gates mutations per record id so concurrent identical requests
// collapse to one. Creates share the zero id.
func (s *CustomerStore) acquire(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return ErrMutationInFlight
	}
	s.inflight[id] = true
	return nil
}

func (s *CustomerStore) release(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}
