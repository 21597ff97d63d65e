// Package client provides a typed Go client for the CRM REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
	"github.com/mcatania72/CRM-System-NEW/internal/service"
)

// Client talks to a CRM API server. It is safe for concurrent use once
// the token is set.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token up front, skipping Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the given base URL, e.g. "http://localhost:4001".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// PagedResponse is the list envelope returned by collection endpoints.
type PagedResponse[T any] struct {
	Data       []T              `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, model.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (*model.PublicUser, error) {
	var out model.PublicUser
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomerListOptions filters the customer list.
type CustomerListOptions struct {
	Search   string
	Industry string
	Status   string
	Page     int
	Limit    int
}

func (o CustomerListOptions) query() url.Values {
	q := url.Values{}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Industry != "" {
		q.Set("industry", o.Industry)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// ListCustomers returns a page of customers.
func (c *Client) ListCustomers(ctx context.Context, opts CustomerListOptions) (*PagedResponse[model.Customer], error) {
	var out PagedResponse[model.Customer]
	if err := c.do(ctx, http.MethodGet, "/api/customers", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomer returns one customer with its opportunities and interactions.
func (c *Client) GetCustomer(ctx context.Context, id uint) (*model.Customer, error) {
	var out model.Customer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/customers/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCustomer creates a customer.
func (c *Client) CreateCustomer(ctx context.Context, req model.CreateCustomerRequest) (*model.Customer, error) {
	var out model.Customer
	if err := c.do(ctx, http.MethodPost, "/api/customers", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer applies a partial update.
func (c *Client) UpdateCustomer(ctx context.Context, id uint, req model.UpdateCustomerRequest) (*model.Customer, error) {
	var out model.Customer
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/customers/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer deletes a customer. Customers with opportunities or
// interactions are rejected with a 409 APIError.
func (c *Client) DeleteCustomer(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/customers/%d", id), nil, nil, nil)
}

// CustomerStats returns per-status customer counts.
func (c *Client) CustomerStats(ctx context.Context) (*model.CustomerStats, error) {
	var out model.CustomerStats
	if err := c.do(ctx, http.MethodGet, "/api/customers/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpportunityListOptions filters the opportunity list.
type OpportunityListOptions struct {
	Stage      string
	CustomerID uint
	Page       int
	Limit      int
}

func (o OpportunityListOptions) query() url.Values {
	q := url.Values{}
	if o.Stage != "" {
		q.Set("stage", o.Stage)
	}
	if o.CustomerID > 0 {
		q.Set("customerId", strconv.FormatUint(uint64(o.CustomerID), 10))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// ListOpportunities returns a page of opportunities.
func (c *Client) ListOpportunities(ctx context.Context, opts OpportunityListOptions) (*PagedResponse[model.Opportunity], error) {
	var out PagedResponse[model.Opportunity]
	if err := c.do(ctx, http.MethodGet, "/api/opportunities", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOpportunity returns one opportunity with its customer.
func (c *Client) GetOpportunity(ctx context.Context, id uint) (*model.Opportunity, error) {
	var out model.Opportunity
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/opportunities/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOpportunity creates an opportunity for an existing customer.
func (c *Client) CreateOpportunity(ctx context.Context, req model.CreateOpportunityRequest) (*model.Opportunity, error) {
	var out model.Opportunity
	if err := c.do(ctx, http.MethodPost, "/api/opportunities", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOpportunity applies a partial update.
func (c *Client) UpdateOpportunity(ctx context.Context, id uint, req model.UpdateOpportunityRequest) (*model.Opportunity, error) {
	var out model.Opportunity
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/opportunities/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOpportunity deletes an opportunity.
func (c *Client) DeleteOpportunity(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/opportunities/%d", id), nil, nil, nil)
}

// OpportunityStats returns pipeline aggregates grouped by stage.
func (c *Client) OpportunityStats(ctx context.Context) (*model.OpportunityStats, error) {
	var out model.OpportunityStats
	if err := c.do(ctx, http.MethodGet, "/api/opportunities/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivityListOptions filters the activity list.
type ActivityListOptions struct {
	Type         string
	Status       string
	AssignedToID uint
	Page         int
	Limit        int
}

func (o ActivityListOptions) query() url.Values {
	q := url.Values{}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.AssignedToID > 0 {
		q.Set("assignedToId", strconv.FormatUint(uint64(o.AssignedToID), 10))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// ListActivities returns a page of activities. Non-admin callers only
// see their own.
func (c *Client) ListActivities(ctx context.Context, opts ActivityListOptions) (*PagedResponse[model.Activity], error) {
	var out PagedResponse[model.Activity]
	if err := c.do(ctx, http.MethodGet, "/api/activities", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActivity returns one activity.
func (c *Client) GetActivity(ctx context.Context, id uint) (*model.Activity, error) {
	var out model.Activity
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/activities/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateActivity creates an activity for an existing assignee.
func (c *Client) CreateActivity(ctx context.Context, req model.CreateActivityRequest) (*model.Activity, error) {
	var out model.Activity
	if err := c.do(ctx, http.MethodPost, "/api/activities", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateActivity applies a partial update. The completion date is set
// server-side on the first transition to completed.
func (c *Client) UpdateActivity(ctx context.Context, id uint, req model.UpdateActivityRequest) (*model.Activity, error) {
	var out model.Activity
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/activities/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteActivity deletes an activity.
func (c *Client) DeleteActivity(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/activities/%d", id), nil, nil, nil)
}

// MyActivities returns all activities assigned to the caller.
func (c *Client) MyActivities(ctx context.Context) ([]model.Activity, error) {
	var out []model.Activity
	if err := c.do(ctx, http.MethodGet, "/api/activities/my-activities", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpcomingActivities returns the caller's open activities due in the
// next seven days.
func (c *Client) UpcomingActivities(ctx context.Context) ([]model.Activity, error) {
	var out []model.Activity
	if err := c.do(ctx, http.MethodGet, "/api/activities/upcoming", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InteractionListOptions filters the interaction list.
type InteractionListOptions struct {
	Type       string
	CustomerID uint
	Page       int
	Limit      int
}

func (o InteractionListOptions) query() url.Values {
	q := url.Values{}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.CustomerID > 0 {
		q.Set("customerId", strconv.FormatUint(uint64(o.CustomerID), 10))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// ListInteractions returns a page of interactions.
func (c *Client) ListInteractions(ctx context.Context, opts InteractionListOptions) (*PagedResponse[model.Interaction], error) {
	var out PagedResponse[model.Interaction]
	if err := c.do(ctx, http.MethodGet, "/api/interactions", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInteraction returns one interaction.
func (c *Client) GetInteraction(ctx context.Context, id uint) (*model.Interaction, error) {
	var out model.Interaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/interactions/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInteraction logs an interaction; the author is the caller.
func (c *Client) CreateInteraction(ctx context.Context, req model.CreateInteractionRequest) (*model.Interaction, error) {
	var out model.Interaction
	if err := c.do(ctx, http.MethodPost, "/api/interactions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInteraction applies a partial update.
func (c *Client) UpdateInteraction(ctx context.Context, id uint, req model.UpdateInteractionRequest) (*model.Interaction, error) {
	var out model.Interaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/interactions/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInteraction deletes an interaction.
func (c *Client) DeleteInteraction(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/interactions/%d", id), nil, nil, nil)
}

// RecentInteractions returns the latest interactions, newest first.
func (c *Client) RecentInteractions(ctx context.Context, limit int) ([]model.Interaction, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []model.Interaction
	if err := c.do(ctx, http.MethodGet, "/api/interactions/recent", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CustomerInteractions returns all interactions for one customer.
func (c *Client) CustomerInteractions(ctx context.Context, customerID uint) ([]model.Interaction, error) {
	var out []model.Interaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/interactions/customer/%d", customerID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardStats returns the aggregated dashboard counters and charts.
func (c *Client) DashboardStats(ctx context.Context) (*service.DashboardStats, error) {
	var out service.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Report generates one of the dashboard reports: "customers",
// "opportunities", "activities" or "sales". The date bounds are optional.
func (c *Client) Report(ctx context.Context, reportType string, start, end *time.Time) (*service.Report, error) {
	q := url.Values{}
	q.Set("type", reportType)
	if start != nil {
		q.Set("startDate", start.Format("2006-01-02"))
	}
	if end != nil {
		q.Set("endDate", end.Format("2006-01-02"))
	}
	var out service.Report
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/reports", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
