// Package orderapi is the client for the remote DATAMART order-submission
// API. The core submits one request per batch with the valid candidates and
// treats the returned processedCount and newBalance as authoritative.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OrderItem is one order line in a bulk submission.
type OrderItem struct {
	ProductID         string `json:"productId"`
	BeneficiaryNumber string `json:"beneficiaryNumber"`
	Quantity          int    `json:"quantity"`
}

// SubmitResult is the successful response payload.
type SubmitResult struct {
	ProcessedCount int     `json:"processedCount"`
	NewBalance     float64 `json:"newBalance"`
}

// APIError is a rejection from the order API (success=false). The message
// and detail list are surfaced to the user verbatim.
type APIError struct {
	Message string
	Details []string
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
}

type submitRequest struct {
	Orders []OrderItem `json:"orders"`
}

type submitResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Errors  []string      `json:"errors"`
	Data    *SubmitResult `json:"data"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SubmitOrders posts the order list in a single request. Transport failures
// and non-2xx statuses come back as wrapped errors; an explicit rejection
// comes back as *APIError.
func (c *Client) SubmitOrders(ctx context.Context, items []OrderItem) (*SubmitResult, error) {
	body, err := json.Marshal(submitRequest{Orders: items})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/bulk", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit orders: %w", err)
	}
	defer resp.Body.Close()

	var decoded submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !decoded.Success {
		msg := decoded.Message
		if msg == "" {
			msg = fmt.Sprintf("order API returned status %d", resp.StatusCode)
		}
		return nil, &APIError{Message: msg, Details: decoded.Errors}
	}
	if decoded.Data == nil {
		return nil, fmt.Errorf("order API success response missing data")
	}

	return decoded.Data, nil
}
