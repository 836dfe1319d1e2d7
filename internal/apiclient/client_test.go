package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/insurance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client(), zap.NewNop())
}

func TestListCustomersDecodesEntities(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Alice","email":"alice@example.com","created_at":"2026-01-02T10:00:00Z"}]`))
	})

	list, err := c.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Alice", list[0].Name)
}

func TestCreateCustomerSendsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":7,"name":"Bob"}`))
	})

	created, err := c.CreateCustomer(context.Background(), &customer.CreateCustomerRequest{Name: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
}

func TestServerErrorCarriesStatusAndMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Customer not found"}`))
	})

	_, err := c.GetCustomer(context.Background(), 42)
	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, "Customer not found", serr.Message)
}

func TestServerErrorToleratesMissingMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})

	_, err := c.ListInsurances(context.Background())
	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Empty(t, serr.Message)
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	})

	_, err := c.GetInsurance(context.Background(), 1)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := New(srv.URL, &http.Client{Timeout: time.Second}, zap.NewNop())
	_, err := c.ListCustomers(context.Background())

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Error(t, terr.Unwrap())
}

func TestDeleteIgnoresSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/customers/3", r.URL.Path)
		w.Write([]byte(`{"message":"Customer deleted successfully"}`))
	})

	require.NoError(t, c.DeleteCustomer(context.Background(), 3))
}

func TestCustomerInsurancesPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/insurances/customer/5", r.URL.Path)
		w.Write([]byte(`[{"id":9,"customer_id":5,"type":"auto","renewal_date":"2026-09-15","premium_amount":120.5}]`))
	})

	list, err := c.CustomerInsurances(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "auto", list[0].Type)
	assert.Equal(t, "2026-09-15", list[0].RenewalDate.String())
}

func TestUpcomingRenewalsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/insurances/upcoming-renewals", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Write([]byte(`[]`))
	})

	list, err := c.UpcomingRenewals(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateInsuranceRoundTrip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/insurances/9", r.URL.Path)
		w.Write([]byte(`{"id":9,"customer_id":5,"type":"health","renewal_date":"2027-01-01","premium_amount":80}`))
	})

	req := &insurance.CreateInsuranceRequest{Type: "health", PremiumAmount: 80}
	updated, err := c.UpdateInsurance(context.Background(), 9, req)
	require.NoError(t, err)
	assert.Equal(t, "health", updated.Type)
}
