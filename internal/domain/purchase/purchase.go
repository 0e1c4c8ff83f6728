// Package purchase joins raw Amazon transactions to their parent orders,
// producing the purchase records the matching core operates on.
package purchase

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eshaffer321/amazon-ynab-sync/internal/adapters/amazon"
)

// LineItem is a single purchased item.
type LineItem struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Link  string          `json:"link,omitempty"`
}

// Purchase is a completed payment event joined with its parent order.
// TransactionTotal is stored as a positive magnitude: the raw signed amount
// (negative for charges) is inverted on construction.
type Purchase struct {
	CompletedDate    time.Time       `json:"completed_date"`
	TransactionTotal decimal.Decimal `json:"transaction_total"`
	OrderTotal       decimal.Decimal `json:"order_total"`
	OrderNumber      string          `json:"order_number"`
	OrderLink        string          `json:"order_link"`
	Items            []LineItem      `json:"items"`
}

// IsPartial reports whether this transaction covers only part of its order
// (the order was paid across multiple charges).
func (p Purchase) IsPartial() bool {
	return p.TransactionTotal.LessThan(p.OrderTotal)
}

// Join builds purchases by joining each transaction to its order by order
// number. Transactions whose order is absent from the fetched orders are
// dropped with a diagnostic; a dropped transaction never fails the run.
func Join(orders []amazon.Order, transactions []amazon.Transaction, logger *slog.Logger) []Purchase {
	if logger == nil {
		logger = slog.Default()
	}

	ordersByNumber := make(map[string]amazon.Order, len(orders))
	for _, order := range orders {
		ordersByNumber[order.OrderNumber] = order
	}

	purchases := make([]Purchase, 0, len(transactions))
	for _, tx := range transactions {
		order, ok := ordersByNumber[tx.OrderNumber]
		if !ok {
			logger.Debug("transaction not found in retrieved orders",
				slog.String("order_number", tx.OrderNumber),
			)
			continue
		}

		items := make([]LineItem, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, LineItem{
				Title: item.Title,
				Price: item.Price,
				Link:  item.Link,
			})
		}

		purchases = append(purchases, Purchase{
			CompletedDate:    tx.CompletedDate,
			TransactionTotal: tx.GrandTotal.Neg(),
			OrderTotal:       order.GrandTotal,
			OrderNumber:      order.OrderNumber,
			OrderLink:        order.OrderLink,
			Items:            items,
		})
	}

	return purchases
}
