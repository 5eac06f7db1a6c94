package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storeseed/internal/backend/common"
)

// Client talks to a PostgREST-compatible endpoint (Supabase and friends).
// Inserts ask for the full row representation back, which is how assigned
// ids reach the caller.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Insert(ctx context.Context, collection string, records []map[string]any) ([]map[string]any, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if !common.ValidIdentifier(collection) {
		return nil, fmt.Errorf("invalid collection name: %s", collection)
	}

	body, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.collectionURL(collection), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, payload)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		// Accepted without a representation, nothing to confirm.
		return nil, nil
	}

	var confirmed []map[string]any
	if err := json.Unmarshal(payload, &confirmed); err != nil {
		return nil, fmt.Errorf("decode insert response: %w", err)
	}
	return confirmed, nil
}

// Truncate deletes every row. PostgREST refuses unfiltered deletes, hence
// the always-true id filter.
func (c *Client) Truncate(ctx context.Context, collection string) error {
	if !common.ValidIdentifier(collection) {
		return fmt.Errorf("invalid collection name: %s", collection)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.collectionURL(collection)+"?id=not.is.null", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(resp.Body)
		return decodeError(resp.StatusCode, payload)
	}
	return nil
}

func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) collectionURL(collection string) string {
	return c.baseURL + "/rest/v1/" + collection
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func decodeError(status int, payload []byte) error {
	var apiErr apiError
	if json.Unmarshal(payload, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Errorf("backend error (status %d): %s", status, apiErr.Message)
	}
	return fmt.Errorf("backend returned status %d", status)
}
