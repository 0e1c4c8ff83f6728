package amazon

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetailsURL is the base URL for Amazon order detail pages.
const OrderDetailsURL = "https://www.amazon.com/gp/your-account/order-details?orderID="

// Item is a single line item of an order.
type Item struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Link  string          `json:"link,omitempty"`
}

// Order is an Amazon order as reported by the scraper.
type Order struct {
	OrderNumber string          `json:"order_number"`
	PlacedDate  time.Time       `json:"placed_date"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	OrderLink   string          `json:"order_link"`
	Items       []Item          `json:"items"`
}

// Transaction is a payment event against an order. GrandTotal carries the
// raw signed amount: negative for charges, matching how Amazon reports
// debits.
type Transaction struct {
	OrderNumber   string          `json:"order_number"`
	CompletedDate time.Time       `json:"completed_date"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// cliOutput is the JSON document emitted by amazon-order-scraper.
type cliOutput struct {
	Orders []cliOrder `json:"orders"`
}

type cliOrder struct {
	OrderID      string           `json:"orderId"`
	OrderDate    string           `json:"orderDate"` // ISO 8601: "2025-12-13"
	Total        string           `json:"total"`     // "$116.20"
	Items        []cliOrderItem   `json:"items"`
	Transactions []cliTransaction `json:"transactions"`
}

type cliOrderItem struct {
	Name  string `json:"name"`
	Price string `json:"price"` // "$14.99"
	Link  string `json:"link"`
}

type cliTransaction struct {
	Date   string `json:"date"`   // ISO 8601: "2025-12-13"
	Amount string `json:"amount"` // "$116.20"
	Type   string `json:"type"`   // "charge" or "refund"
}
