package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/ynab"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/matcher"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/memo"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
)

// Run executes the sync process: every pending budget transaction is
// matched against the purchase pool by amount, gated by the date-tolerance
// policy, annotated with a composed memo, and (outside dry-run) written
// back. A write failure is recorded and the run continues; one bad
// transaction never blocks the rest.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		Errors:    make([]string, 0),
		StartedAt: time.Now(),
	}

	o.logger.Debug("starting sync",
		slog.String("run_id", result.RunID),
		slog.Bool("dry_run", opts.DryRun),
		slog.Bool("force", opts.Force),
		slog.Bool("non_interactive", o.nonInteractive(opts)),
		slog.Int("transaction_days", o.cfg.Amazon.TransactionDays),
	)

	if opts.DryRun {
		fmt.Fprintln(o.out, "DRY RUN MODE - No changes will be made")
	}

	budgetTransactions, completedPayee, err := o.fetchBudgetTransactions(ctx, opts)
	if err != nil {
		var setupErr *SetupError
		if errors.As(err, &setupErr) {
			fmt.Fprintf(o.out, "No matching transactions found in YNAB: %v\n", setupErr)
		}
		result.CompletedAt = time.Now()
		return result, err
	}

	pool, err := o.fetchPurchases(ctx, opts)
	if err != nil {
		result.CompletedAt = time.Now()
		return result, err
	}

	result.YnabCount = len(budgetTransactions)
	result.AmazonCount = len(pool)

	o.logger.Info("looking for matching transactions",
		slog.Int("ynab_count", result.YnabCount),
		slog.Int("amazon_count", result.AmazonCount),
	)

	for _, budgetTran := range budgetTransactions {
		target := budgetTran.AmountDecimal().Neg()

		o.logger.Debug("matching budget transaction",
			slog.String("id", budgetTran.ID),
			slog.String("date", budgetTran.Date.Format("2006-01-02")),
			slog.String("amount", target.StringFixed(2)),
		)

		idx, found := matcher.LocateByAmount(pool, target)
		if !found {
			fmt.Fprintf(o.out, "**** Could not find a matching Amazon transaction for %s $%s\n",
				budgetTran.Date.Format("2006-01-02"), target.StringFixed(2))
			result.Skipped++
			continue
		}

		matched := pool[idx]

		if !o.acceptDate(matched, budgetTran, opts) {
			fmt.Fprintln(o.out, "Skipping this transaction...")
			result.Skipped++
			continue
		}

		// Committed match: remove the purchase from the pool so it is
		// never offered to a later budget transaction.
		pool = append(pool[:idx], pool[idx+1:]...)
		result.Matched++

		memoText := o.composeMemo(ctx, matched)

		fmt.Fprintf(o.out, "Matched Amazon transaction %s $%s\nMemo:\n%s\n",
			matched.CompletedDate.Format("2006-01-02"),
			matched.TransactionTotal.StringFixed(2),
			memoText,
		)

		if opts.DryRun {
			o.reportDryRun(budgetTran.MemoText(), memoText)
			result.Skipped++
			continue
		}

		if !o.nonInteractive(opts) && !o.confirm("Update YNAB transaction memo?") {
			fmt.Fprintln(o.out, "Skipping YNAB transaction update...")
			result.Skipped++
			continue
		}

		err := o.ynab.UpdateTransaction(ctx, o.cfg.YNAB.BudgetID, budgetTran.ID, memoText, completedPayee.ID)
		if err != nil {
			o.logger.Error("failed to update transaction",
				slog.String("id", budgetTran.ID),
				slog.String("error", err.Error()),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("transaction %s: %v", budgetTran.ID, err))
			continue
		}

		o.logger.Info("updated transaction", slog.String("id", budgetTran.ID))
		result.Updated++
	}

	result.CompletedAt = time.Now()
	return result, nil
}

// acceptDate applies the date-tolerance policy to a candidate pair,
// prompting when the policy requires confirmation.
func (o *Orchestrator) acceptDate(matched purchase.Purchase, budgetTran ynab.BudgetTransaction, opts Options) bool {
	decision := matcher.DecideDate(
		matched.CompletedDate,
		budgetTran.Date.Time,
		o.cfg.Sync.DateMismatchToleranceDays,
		o.cfg.Sync.AutoAcceptDateMismatch,
		o.nonInteractive(opts),
	)

	diff := matcher.DateDiffDays(matched.CompletedDate, budgetTran.Date.Time)
	switch decision {
	case matcher.Accept:
		if diff > 0 {
			o.logger.Debug("date mismatch within tolerance",
				slog.Int("diff_days", diff),
				slog.Int("tolerance_days", o.cfg.Sync.DateMismatchToleranceDays),
			)
		}
		return true
	case matcher.AcceptMismatch:
		o.logger.Warn("auto-accepting date mismatch",
			slog.String("ynab_date", budgetTran.Date.Time.Format("2006-01-02")),
			slog.String("amazon_date", matched.CompletedDate.Format("2006-01-02")),
			slog.Int("diff_days", diff),
		)
		return true
	default:
		fmt.Fprintf(o.out, "**** The dates don't match! YNAB: %s Amazon: %s (diff: %d days)\n",
			budgetTran.Date.Time.Format("2006-01-02"),
			matched.CompletedDate.Format("2006-01-02"),
			diff,
		)
		return o.confirm("Continue matching this transaction anyway?")
	}
}

// composeMemo builds, optionally summarizes, and length-limits the memo for
// a matched purchase.
func (o *Orchestrator) composeMemo(ctx context.Context, matched purchase.Purchase) string {
	m := memo.Compose(matched, memo.ComposeOptions{
		UseMarkdown:            o.cfg.YNAB.UseMarkdown,
		SuppressPartialWarning: o.cfg.Sync.SuppressPartialOrderWarning,
	})

	if o.summarizer != nil {
		summarized, err := o.summarizer.Summarize(ctx, m.Render())
		if err != nil {
			o.logger.Warn("memo summarization failed, using original",
				slog.String("error", err.Error()),
			)
		} else {
			m = memo.New(splitLines(summarized)...)
		}
	}

	return m.Truncate().Render()
}

// reportDryRun prints the diff between the existing and proposed memo.
func (o *Orchestrator) reportDryRun(current, proposed string) {
	fmt.Fprintln(o.out, "DRY RUN: Would update this transaction")
	if current == proposed {
		fmt.Fprintln(o.out, "No changes needed")
		return
	}
	fmt.Fprintln(o.out, diffLines(current, proposed))
}

func (o *Orchestrator) nonInteractive(opts Options) bool {
	return opts.NonInteractive || o.cfg.Sync.NonInteractive
}

func (o *Orchestrator) confirm(prompt string) bool {
	if o.confirmer == nil {
		return false
	}
	return o.confirmer.Confirm(prompt)
}
