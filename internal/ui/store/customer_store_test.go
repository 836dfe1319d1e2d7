package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"insurtrack/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCustomerAPI is an in-memory backend for the customer store tests.
type fakeCustomerAPI struct {
	mu     sync.Mutex
	nextID int64
	data   []customer.Customer

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	deleteCalls int

	// blockList, when set, holds ListCustomers until released.
	blockList chan struct{}
}

func newFakeCustomerAPI(seed ...customer.Customer) *fakeCustomerAPI {
	f := &fakeCustomerAPI{nextID: 100}
	f.data = append(f.data, seed...)
	return f
}

func (f *fakeCustomerAPI) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	f.mu.Lock()
	f.listCalls++
	block := f.blockList
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]customer.Customer, len(f.data))
	copy(out, f.data)
	return out, nil
}

func (f *fakeCustomerAPI) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c := customer.Customer{ID: f.nextID, Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address, Notes: req.Notes}
	f.data = append(f.data, c)
	return &c, nil
}

func (f *fakeCustomerAPI) UpdateCustomer(ctx context.Context, id int64, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.data {
		if f.data[i].ID == id {
			f.data[i].Name = req.Name
			f.data[i].Email = req.Email
			c := f.data[i]
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCustomerAPI) DeleteCustomer(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.data {
		if f.data[i].ID == id {
			f.data = append(f.data[:i], f.data[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func TestCustomerStoreRefreshReplacesList(t *testing.T) {
	api := newFakeCustomerAPI(
		customer.Customer{ID: 1, Name: "Alice"},
		customer.Customer{ID: 2, Name: "Bob"},
	)
	s := NewCustomerStore(api, zap.NewNop())

	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, s.Customers(), 2)
	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())

	// A second refresh is idempotent.
	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, s.Customers(), 2)
}

func TestCustomerStoreRefreshFailureKeepsOldList(t *testing.T) {
	api := newFakeCustomerAPI(customer.Customer{ID: 1, Name: "Alice"})
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	api.mu.Lock()
	api.listErr = errors.New("backend down")
	api.mu.Unlock()

	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, s.Customers(), 1, "failed refresh must not clobber the list")
	assert.Error(t, s.Err())
}

func TestCustomerStoreSearchFiltersView(t *testing.T) {
	api := newFakeCustomerAPI(
		customer.Customer{ID: 1, Name: "Alice", Email: "alice@example.com"},
		customer.Customer{ID: 2, Name: "Bob"},
	)
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	s.SetSearchTerm("ALICE")
	got := s.Customers()
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Len(t, s.All(), 2, "the unfiltered list is untouched")

	s.SetSearchTerm("")
	assert.Len(t, s.Customers(), 2)
}

func TestCustomerStoreCreateRefetches(t *testing.T) {
	api := newFakeCustomerAPI(customer.Customer{ID: 1, Name: "Alice"})
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	created, err := s.Create(context.Background(), &customer.CreateCustomerRequest{Name: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", created.Name)

	// The new record appears via refetch, not local patching.
	assert.Len(t, s.Customers(), 2)
}

func TestCustomerStoreCreateFailureLeavesListUnchanged(t *testing.T) {
	api := newFakeCustomerAPI(customer.Customer{ID: 1, Name: "Alice"})
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	api.mu.Lock()
	api.createErr = errors.New("validation failed")
	api.mu.Unlock()

	_, err := s.Create(context.Background(), &customer.CreateCustomerRequest{Name: "Bob"})
	require.Error(t, err)
	assert.Len(t, s.Customers(), 1)
}

func TestCustomerStoreRemoveConfirmedDeletes(t *testing.T) {
	api := newFakeCustomerAPI(
		customer.Customer{ID: 1, Name: "Alice"},
		customer.Customer{ID: 2, Name: "Bob"},
	)
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	deleted, err := s.Remove(context.Background(), 1, func() bool { return true })
	require.NoError(t, err)
	assert.True(t, deleted)
	got := s.Customers()
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestCustomerStoreRemoveDeclinedIssuesNoCall(t *testing.T) {
	api := newFakeCustomerAPI(customer.Customer{ID: 1, Name: "Alice"})
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	deleted, err := s.Remove(context.Background(), 1, func() bool { return false })
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, api.deleteCalls)
	assert.Len(t, s.Customers(), 1)
}

func TestCustomerStoreRemoveFailureKeepsList(t *testing.T) {
	api := newFakeCustomerAPI(customer.Customer{ID: 1, Name: "Alice"})
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	api.mu.Lock()
	api.deleteErr = errors.New("conflict")
	api.mu.Unlock()

	deleted, err := s.Remove(context.Background(), 1, nil)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.Len(t, s.Customers(), 1)
	assert.Error(t, s.Err())
}

func TestCustomerStoreDuplicateMutationRejected(t *testing.T) {
	api := newFakeCustomerAPI(customer.Customer{ID: 1, Name: "Alice"})
	s := NewCustomerStore(api, zap.NewNop())
	require.NoError(t, s.Refresh(context.Background()))

	// Simulate an in-flight update for id 1 and race a second one.
	require.NoError(t, s.acquire(1))
	_, err := s.Update(context.Background(), 1, &customer.CreateCustomerRequest{Name: "Alice 2"})
	assert.ErrorIs(t, err, ErrMutationInFlight)
	s.release(1)

	// A different record is unaffected by the gate.
	require.NoError(t, s.acquire(1))
	_, err = s.Create(context.Background(), &customer.CreateCustomerRequest{Name: "Bob"})
	assert.NoError(t, err)
	s.release(1)
}

func TestCustomerStoreStaleRefreshDiscarded(t *testing.T) {
	api := newFakeCustomerAPI(customer.Customer{ID: 1, Name: "Alice"})
	api.blockList = make(chan struct{})
	s := NewCustomerStore(api, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()

	// Wait for the fetch to be in flight, then invalidate the view.
	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.listCalls == 1
	}, time.Second, time.Millisecond)
	s.Reset()
	close(api.blockList)

	require.NoError(t, <-done)
	assert.Empty(t, s.Customers(), "a result landing after Reset must be discarded")
	assert.Empty(t, s.All())
}
