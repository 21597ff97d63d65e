package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
)

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q, want /api/auth/login", r.URL.Path)
		}
		var req model.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if req.Email != "rep@example.com" {
			t.Errorf("email = %q", req.Email)
		}
		json.NewEncoder(w).Encode(model.AuthResponse{Token: "issued-token"})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "rep@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "issued-token" {
		t.Errorf("token = %q", resp.Token)
	}
	if c.token != "issued-token" {
		t.Error("client did not store the issued token")
	}
}

func TestRequestsCarryBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		json.NewEncoder(w).Encode(PagedResponse[model.Customer]{})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok"))
	if _, err := c.ListCustomers(context.Background(), CustomerListOptions{}); err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
}

func TestListOptionsEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "acme" || q.Get("page") != "2" || q.Get("limit") != "5" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(PagedResponse[model.Customer]{})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok"))
	_, err := c.ListCustomers(context.Background(), CustomerListOptions{Search: "acme", Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "customer has dependent records"})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok"))
	err := c.DeleteCustomer(context.Background(), 3)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Message != "customer has dependent records" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Profile(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message == "" {
		t.Error("message should fall back to the status text")
	}
}
