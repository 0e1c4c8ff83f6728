// Package ynab is a minimal client for the YNAB v1 REST API, covering the
// payee and transaction operations the sync needs.
package ynab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultBaseURL is the production YNAB API endpoint.
const DefaultBaseURL = "https://api.ynab.com/v1"

// Client calls the YNAB API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client authenticated with a personal access token.
func NewClient(token string) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 3
	retry.Logger = nil

	return &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: retry.StandardClient(),
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// Payees returns all payees of a budget.
func (c *Client) Payees(ctx context.Context, budgetID string) ([]Payee, error) {
	var response struct {
		Data struct {
			Payees []Payee `json:"payees"`
		} `json:"data"`
	}

	path := fmt.Sprintf("/budgets/%s/payees", budgetID)
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch payees: %w", err)
	}
	return response.Data.Payees, nil
}

// TransactionsByPayee returns all transactions of a budget for one payee.
func (c *Client) TransactionsByPayee(ctx context.Context, budgetID, payeeID string) ([]BudgetTransaction, error) {
	var response struct {
		Data struct {
			Transactions []BudgetTransaction `json:"transactions"`
		} `json:"data"`
	}

	path := fmt.Sprintf("/budgets/%s/payees/%s/transactions", budgetID, payeeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return response.Data.Transactions, nil
}

// UpdateTransaction writes a memo and payee onto an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, budgetID, transactionID, memoText, payeeID string) error {
	request := map[string]any{
		"transaction": map[string]any{
			"memo":     memoText,
			"payee_id": payeeID,
		},
	}

	path := fmt.Sprintf("/budgets/%s/transactions/%s", budgetID, transactionID)
	if err := c.do(ctx, http.MethodPut, path, request, nil); err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return nil
}

// do executes one API call, encoding the request body and decoding the
// response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp struct {
			Error struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				Detail string `json:"detail"`
			} `json:"error"`
		}
		if err := json.Unmarshal(payload, &errorResp); err == nil && errorResp.Error.Detail != "" {
			return fmt.Errorf("YNAB API error: %s (%s)", errorResp.Error.Detail, errorResp.Error.Name)
		}
		return fmt.Errorf("YNAB API returned status %d: %s", resp.StatusCode, string(payload))
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
