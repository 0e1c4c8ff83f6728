package memo

import (
	"context"
	"fmt"

	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
)

// Summarizer is an optional collaborator that rewrites a rendered memo into
// a shorter form. Its absence is not an error; composition proceeds
// unmodified without one.
type Summarizer interface {
	Summarize(ctx context.Context, memoText string) (string, error)
}

// ComposeOptions control memo formatting.
type ComposeOptions struct {
	UseMarkdown            bool
	SuppressPartialWarning bool
}

// Compose builds a memo describing a purchase:
//   - a warning header when the transaction covers only part of its order,
//   - a single bullet line for one item, or an "Items" header with numbered
//     lines for several,
//   - a trailing order-reference line that truncation never drops.
func Compose(p purchase.Purchase, opts ComposeOptions) *Memo {
	m := New()

	if p.IsPartial() && !opts.SuppressPartialWarning {
		warning := fmt.Sprintf(
			"-This transaction doesn't represent the entire order. The order total is $%s-",
			p.OrderTotal.StringFixed(2),
		)
		if opts.UseMarkdown {
			warning = "**" + warning + "**"
		}
		m.Append(warning)
		m.Append("")
	}

	switch len(p.Items) {
	case 0:
	case 1:
		m.Append("- " + formatTitle(p.Items[0], opts.UseMarkdown))
	default:
		m.Append("Items")
		for i, item := range p.Items {
			m.Append(fmt.Sprintf("%d. %s", i+1, formatTitle(item, opts.UseMarkdown)))
		}
	}

	m.Append(orderReference(p, opts.UseMarkdown))

	return m
}

// formatTitle renders an item title, as a markdown link when enabled and
// the item has a product page.
func formatTitle(item purchase.LineItem, useMarkdown bool) string {
	if useMarkdown && item.Link != "" {
		return fmt.Sprintf("[%s](%s)", item.Title, item.Link)
	}
	return item.Title
}

// orderReference renders the trailing order-reference line.
func orderReference(p purchase.Purchase, useMarkdown bool) string {
	if useMarkdown {
		return fmt.Sprintf("[Order #%s](%s)", p.OrderNumber, p.OrderLink)
	}
	return fmt.Sprintf("Order #%s", p.OrderNumber)
}
