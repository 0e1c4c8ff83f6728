// Package cli provides console rendering and interactive prompts for the
// sync command.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/ynab"
	"github.com/eshaffer321/amazon-ynab-sync/internal/application/sync"
	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// PrintPurchases renders a table of purchase transactions for inspection.
func PrintPurchases(w io.Writer, purchases []purchase.Purchase) {
	fmt.Fprintf(w, "found %d transactions\n", len(purchases))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Completed Date", "Transaction Total", "Order Total", "Order Number", "Items")

	for _, p := range purchases {
		titles := make([]string, 0, len(p.Items))
		for _, item := range p.Items {
			titles = append(titles, truncateTitle(item.Title, 20))
		}
		t.Row(
			p.CompletedDate.Format("2006-01-02"),
			"$"+p.TransactionTotal.StringFixed(2),
			"$"+p.OrderTotal.StringFixed(2),
			p.OrderNumber,
			strings.Join(titles, " | "),
		)
	}

	fmt.Fprintln(w, t.Render())
}

// PrintBudgetTransactions renders a table of pending YNAB transactions.
func PrintBudgetTransactions(w io.Writer, transactions []ynab.BudgetTransaction) {
	fmt.Fprintf(w, "found %d transactions\n", len(transactions))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Amount", "Memo")

	for _, tx := range transactions {
		t.Row(
			tx.Date.Format("2006-01-02"),
			"$"+tx.AmountDecimal().Neg().StringFixed(2),
			truncateTitle(tx.MemoText(), 40),
		)
	}

	fmt.Fprintln(w, t.Render())
}

// PrintResult renders the run summary.
func PrintResult(w io.Writer, result *sync.Result) {
	fmt.Fprintln(w, headerStyle.Render("Sync complete"))
	fmt.Fprintf(w, "  ynab: %d  amazon: %d\n", result.YnabCount, result.AmazonCount)
	fmt.Fprintf(w, "  matched: %d  updated: %d  skipped: %d\n", result.Matched, result.Updated, result.Skipped)

	if len(result.Errors) > 0 {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("  errors: %d", len(result.Errors))))
		for _, msg := range result.Errors {
			fmt.Fprintln(w, warningStyle.Render("    "+msg))
		}
	}
}

func truncateTitle(title string, maxLength int) string {
	if len(title) > maxLength {
		return title[:maxLength-3] + "..."
	}
	return title
}
