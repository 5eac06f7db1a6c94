package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInsertSendsRepresentationRequest(t *testing.T) {
	var gotPath, gotPrefer, gotAPIKey, gotAuth string
	var gotRecords []map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotPrefer = r.Header.Get("Prefer")
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRecords); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}

		// Echo rows back with assigned ids, as return=representation does.
		for i := range gotRecords {
			gotRecords[i]["id"] = i + 1
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(gotRecords)
	}))
	defer server.Close()

	c := New(server.URL, "secret-key")
	confirmed, err := c.Insert(context.Background(), "users", []map[string]any{
		{"name": "Ada", "email": "ada@example.com"},
		{"name": "Ed", "email": "ed@example.com"},
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if gotPath != "/rest/v1/users" {
		t.Errorf("Request path = %q, want /rest/v1/users", gotPath)
	}
	if gotPrefer != "return=representation" {
		t.Errorf("Prefer header = %q", gotPrefer)
	}
	if gotAPIKey != "secret-key" || gotAuth != "Bearer secret-key" {
		t.Errorf("Auth headers = %q / %q", gotAPIKey, gotAuth)
	}
	if len(confirmed) != 2 {
		t.Fatalf("Expected 2 confirmed rows, got %d", len(confirmed))
	}
	if confirmed[0]["id"] == nil || confirmed[1]["id"] == nil {
		t.Error("Confirmed rows missing assigned ids")
	}
}

func TestInsertBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "duplicate key value", "code": "23505"})
	}))
	defer server.Close()

	c := New(server.URL, "key")
	_, err := c.Insert(context.Background(), "users", []map[string]any{{"email": "dup@example.com"}})
	if err == nil {
		t.Fatal("Expected an error for a 409 response")
	}
	if got := err.Error(); got != "backend error (status 409): duplicate key value" {
		t.Errorf("Unexpected error message: %s", got)
	}
}

func TestInsertSuccessWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := New(server.URL, "key")
	confirmed, err := c.Insert(context.Background(), "users", []map[string]any{{"name": "Ada"}})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if confirmed != nil {
		t.Errorf("Expected no confirmed rows, got %v", confirmed)
	}
}

func TestInsertEmptyBatchSkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request expected for an empty batch")
	}))
	defer server.Close()

	c := New(server.URL, "key")
	confirmed, err := c.Insert(context.Background(), "users", nil)
	if err != nil || confirmed != nil {
		t.Errorf("Empty batch should be a no-op, got %v, %v", confirmed, err)
	}
}

func TestInsertRejectsInvalidCollection(t *testing.T) {
	c := New("http://localhost", "key")
	_, err := c.Insert(context.Background(), "users; drop table users", nil)
	if err != nil {
		t.Fatal("Empty batch short-circuits before validation")
	}
	_, err = c.Insert(context.Background(), "users; drop table users", []map[string]any{{"a": 1}})
	if err == nil {
		t.Error("Expected an error for an invalid collection name")
	}
}

func TestTruncateUsesFilteredDelete(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, "key")
	if err := c.Truncate(context.Background(), "orders"); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}

	if gotMethod != http.MethodDelete {
		t.Errorf("Expected DELETE, got %s", gotMethod)
	}
	if gotPath != "/rest/v1/orders" || gotQuery != "id=not.is.null" {
		t.Errorf("Unexpected request: %s?%s", gotPath, gotQuery)
	}
}
