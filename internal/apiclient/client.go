// Package apiclient is the typed REST client for the insurtrack API. It is
// explicitly constructed and injected into the UI stores; there is no
// package-level singleton. Every call is a fresh round trip: no retries and
// no caching. Failures are logged once here, then returned unchanged as one
// of *TransportError, *ServerError or *DecodeError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/dashboard"
	"insurtrack/internal/domain/insurance"

	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New builds a client against baseURL. A nil httpClient gets a default with
// a 15 second timeout.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// do performs one round trip. out may be nil for calls whose body the caller
// does not need.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		terr := &TransportError{Err: err}
		c.logger.Error("network error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return terr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &ServerError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp.Body),
		}
		c.logger.Error("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", serr.Message),
		)
		return serr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		derr := &DecodeError{Err: err}
		c.logger.Error("malformed response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return derr
	}

	return nil
}

// serverMessage inspects an error body opportunistically for a message
// field; absence is tolerated.
func serverMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}

// ---------- Dashboard ----------

func (c *Client) DashboardStats(ctx context.Context) (*dashboard.Stats, error) {
	var stats dashboard.Stats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ---------- Customers ----------

func (c *Client) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	var customers []customer.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	var cust customer.Customer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	var cust customer.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", req, &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	var cust customer.Customer
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), req, &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil)
}

// ---------- Insurances ----------

func (c *Client) ListInsurances(ctx context.Context) ([]insurance.Insurance, error) {
	var insurances []insurance.Insurance
	if err := c.do(ctx, http.MethodGet, "/insurances", nil, &insurances); err != nil {
		return nil, err
	}
	return insurances, nil
}

func (c *Client) GetInsurance(ctx context.Context, id int64) (*insurance.Insurance, error) {
	var ins insurance.Insurance
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/insurances/%d", id), nil, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

// CustomerInsurances retrieves the policies scoped to one customer.
func (c *Client) CustomerInsurances(ctx context.Context, customerID int64) ([]insurance.Insurance, error) {
	var insurances []insurance.Insurance
	path := fmt.Sprintf("/insurances/customer/%d", customerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &insurances); err != nil {
		return nil, err
	}
	return insurances, nil
}

func (c *Client) UpcomingRenewals(ctx context.Context, days int) ([]insurance.Insurance, error) {
	var insurances []insurance.Insurance
	path := fmt.Sprintf("/insurances/upcoming-renewals?days=%d", days)
	if err := c.do(ctx, http.MethodGet, path, nil, &insurances); err != nil {
		return nil, err
	}
	return insurances, nil
}

func (c *Client) CreateInsurance(ctx context.Context, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	var ins insurance.Insurance
	if err := c.do(ctx, http.MethodPost, "/insurances", req, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

func (c *Client) UpdateInsurance(ctx context.Context, id int64, req *insurance.CreateInsuranceRequest) (*insurance.Insurance, error) {
	var ins insurance.Insurance
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/insurances/%d", id), req, &ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

func (c *Client) DeleteInsurance(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/insurances/%d", id), nil, nil)
}
