package amazon

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseCLIOutput parses the JSON output from amazon-order-scraper.
func parseCLIOutput(data []byte) (*cliOutput, error) {
	var output cliOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("failed to decode CLI output: %w", err)
	}
	return &output, nil
}

// convertOrder converts a scraper order into an Order.
func convertOrder(raw cliOrder) (Order, error) {
	order := Order{
		OrderNumber: raw.OrderID,
		OrderLink:   OrderDetailsURL + raw.OrderID,
	}

	if raw.OrderDate != "" {
		date, err := parseDate(raw.OrderDate)
		if err != nil {
			return Order{}, fmt.Errorf("failed to parse order date %q: %w", raw.OrderDate, err)
		}
		order.PlacedDate = date
	}

	total, err := parseAmount(raw.Total)
	if err != nil {
		return Order{}, fmt.Errorf("failed to parse total %q: %w", raw.Total, err)
	}
	order.GrandTotal = total

	for _, item := range raw.Items {
		price := decimal.Zero
		if item.Price != "" {
			price, err = parseAmount(item.Price)
			if err != nil {
				return Order{}, fmt.Errorf("failed to parse item price %q: %w", item.Price, err)
			}
		}
		order.Items = append(order.Items, Item{
			Title: item.Name,
			Price: price,
			Link:  item.Link,
		})
	}

	return order, nil
}

// convertTransactions extracts charge transactions from a scraper order.
// Refunds are skipped: the matching core only reconciles debits, and charge
// amounts are negated here so downstream code sees the raw signed value.
func convertTransactions(raw cliOrder) ([]Transaction, error) {
	var transactions []Transaction
	for _, tx := range raw.Transactions {
		if tx.Type != "charge" {
			continue
		}

		date, err := parseDate(tx.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction date %q: %w", tx.Date, err)
		}

		amount, err := parseAmount(tx.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount %q: %w", tx.Amount, err)
		}

		transactions = append(transactions, Transaction{
			OrderNumber:   raw.OrderID,
			CompletedDate: date,
			GrandTotal:    amount.Neg(),
		})
	}
	return transactions, nil
}

// parseDate parses an ISO 8601 date string.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// parseAmount parses a dollar amount like "$1,234.56" into a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// NormalizeYears expands 2-digit years to 4 digits ("21" -> 2021). An empty
// input defaults to the current year.
func NormalizeYears(years []string) ([]int, error) {
	if len(years) == 0 {
		return []int{time.Now().Year()}, nil
	}

	result := make([]int, 0, len(years))
	for _, year := range years {
		switch len(year) {
		case 2:
			year = "20" + year
		case 4:
		default:
			return nil, fmt.Errorf("year must be specified as 2 or 4 digits (e.g. 21 or 2021), got %q", year)
		}
		var y int
		if _, err := fmt.Sscanf(year, "%d", &y); err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", year, err)
		}
		result = append(result, y)
	}
	return result, nil
}
