// Package sync orchestrates a reconciliation run: it pairs pending YNAB
// transactions with Amazon purchases by amount, gates each pair through the
// date-tolerance policy, composes an item memo, and writes it back.
package sync

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/amazon"
	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/ynab"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/memo"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/cache"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/config"
)

// Options holds per-run settings.
type Options struct {
	DryRun         bool
	Force          bool
	ForceRefresh   bool
	NonInteractive bool
}

// Result is the summary of one sync run, never persisted.
type Result struct {
	RunID       string    `json:"run_id"`
	YnabCount   int       `json:"ynab_count"`
	AmazonCount int       `json:"amazon_count"`
	Matched     int       `json:"matched"`
	Skipped     int       `json:"skipped"`
	Updated     int       `json:"updated"`
	Errors      []string  `json:"errors"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// BudgetClient is the budgeting-service collaborator.
type BudgetClient interface {
	Payees(ctx context.Context, budgetID string) ([]ynab.Payee, error)
	TransactionsByPayee(ctx context.Context, budgetID, payeeID string) ([]ynab.BudgetTransaction, error)
	UpdateTransaction(ctx context.Context, budgetID, transactionID, memoText, payeeID string) error
}

// PurchaseClient is the e-commerce collaborator.
type PurchaseClient interface {
	FetchOrders(ctx context.Context, years []int) ([]amazon.Order, error)
	FetchTransactions(ctx context.Context, days int) ([]amazon.Transaction, error)
}

// Confirmer answers interactive yes/no prompts. A nil Confirmer on the
// orchestrator behaves as if every prompt were declined.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Orchestrator runs the sync process.
type Orchestrator struct {
	cfg        *config.Config
	ynab       BudgetClient
	amazon     PurchaseClient
	cache      *cache.Store
	summarizer memo.Summarizer
	confirmer  Confirmer
	out        io.Writer
	logger     *slog.Logger
}

// NewOrchestrator creates a sync orchestrator. cache, summarizer, and
// confirmer are optional; out defaults to io.Discard.
func NewOrchestrator(
	cfg *config.Config,
	budget BudgetClient,
	purchases PurchaseClient,
	store *cache.Store,
	summarizer memo.Summarizer,
	confirmer Confirmer,
	out io.Writer,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}

	return &Orchestrator{
		cfg:        cfg,
		ynab:       budget,
		amazon:     purchases,
		cache:      store,
		summarizer: summarizer,
		confirmer:  confirmer,
		out:        out,
		logger:     logger,
	}
}
