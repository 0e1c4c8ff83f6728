package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/amazon"
	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/ynab"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
	"github.com/eshaffer321/amazon-ynab-sync/internal/infrastructure/cache"
)

// SetupError reports a budgeting-service precondition failure (a required
// payee is missing). It aborts the run before matching begins.
type SetupError struct {
	Payee string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("payee %q not found in YNAB", e.Payee)
}

// fetchBudgetTransactions returns the pending YNAB transactions to
// reconcile plus the "processing complete" payee used at write-back.
//
// Selection modes, mirroring the configuration surface:
//   - default: unapproved transactions of the "needs memo" payee within the
//     lookback window;
//   - match_empty_memo: empty-memo transactions of the completed payee,
//     filtered by the allowed approval statuses;
//   - force: every completed-payee transaction within the window.
func (o *Orchestrator) fetchBudgetTransactions(ctx context.Context, opts Options) ([]ynab.BudgetTransaction, ynab.Payee, error) {
	budgetID := o.cfg.YNAB.BudgetID

	payees, err := o.ynab.Payees(ctx, budgetID)
	if err != nil {
		return nil, ynab.Payee{}, fmt.Errorf("failed to fetch payees: %w", err)
	}

	completedPayee, ok := ynab.FindPayee(payees, o.cfg.YNAB.PayeeNameProcessingCompleted)
	if !ok {
		return nil, ynab.Payee{}, &SetupError{Payee: o.cfg.YNAB.PayeeNameProcessingCompleted}
	}

	minDate := time.Now().AddDate(0, 0, -o.cfg.Amazon.TransactionDays)

	var transactions []ynab.BudgetTransaction
	switch {
	case o.cfg.YNAB.MatchEmptyMemo || opts.Force:
		transactions, err = o.ynab.TransactionsByPayee(ctx, budgetID, completedPayee.ID)
		if err != nil {
			return nil, ynab.Payee{}, fmt.Errorf("failed to fetch transactions: %w", err)
		}
		if opts.Force {
			transactions = filterTransactions(transactions, func(t ynab.BudgetTransaction) bool {
				return !t.Date.Before(minDate)
			})
		} else {
			allowed := allowedStatuses(o.cfg.YNAB.ApprovedStatuses)
			transactions = filterTransactions(transactions, func(t ynab.BudgetTransaction) bool {
				if t.MemoText() != "" || t.Date.Before(minDate) {
					return false
				}
				if t.Approved {
					return allowed["approved"]
				}
				return allowed["unapproved"]
			})
		}
	default:
		needsMemoPayee, ok := ynab.FindPayee(payees, o.cfg.YNAB.PayeeNameToBeProcessed)
		if !ok {
			return nil, ynab.Payee{}, &SetupError{Payee: o.cfg.YNAB.PayeeNameToBeProcessed}
		}
		transactions, err = o.ynab.TransactionsByPayee(ctx, budgetID, needsMemoPayee.ID)
		if err != nil {
			return nil, ynab.Payee{}, fmt.Errorf("failed to fetch transactions: %w", err)
		}
		transactions = filterTransactions(transactions, func(t ynab.BudgetTransaction) bool {
			return !t.Approved && !t.Date.Before(minDate)
		})
	}

	o.logger.Debug("fetched budget transactions",
		slog.Int("count", len(transactions)),
		slog.String("since", minDate.Format("2006-01-02")),
	)

	return transactions, completedPayee, nil
}

// fetchPurchases returns the purchase snapshot for this run, serving it
// from the cache when a fresh entry exists.
func (o *Orchestrator) fetchPurchases(ctx context.Context, opts Options) ([]purchase.Purchase, error) {
	years, err := amazon.NormalizeYears(o.cfg.Amazon.OrderYears)
	if err != nil {
		return nil, err
	}
	days := o.cfg.Amazon.TransactionDays

	key := cache.Key(o.cfg.Amazon.User, years, days)
	if o.cache != nil && !opts.ForceRefresh {
		if cached, ok, err := o.cache.Get(key); err != nil {
			o.logger.Warn("cache read failed", slog.String("error", err.Error()))
		} else if ok {
			o.logger.Debug("using cached purchase snapshot", slog.Int("count", len(cached)))
			return cached, nil
		}
	}

	orders, err := o.amazon.FetchOrders(ctx, years)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	transactions, err := o.amazon.FetchTransactions(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	purchases := purchase.Join(orders, transactions, o.logger)

	if o.cache != nil {
		if err := o.cache.Put(key, purchases); err != nil {
			o.logger.Warn("cache write failed", slog.String("error", err.Error()))
		}
	}

	return purchases, nil
}

func filterTransactions(transactions []ynab.BudgetTransaction, keep func(ynab.BudgetTransaction) bool) []ynab.BudgetTransaction {
	filtered := transactions[:0]
	for _, t := range transactions {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func allowedStatuses(statuses []string) map[string]bool {
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	return allowed
}
