package ynab

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date in the YNAB API's "2006-01-02" wire format.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a YNAB date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date in YNAB's wire format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// Payee is a YNAB payee.
type Payee struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// BudgetTransaction is a YNAB ledger entry awaiting reconciliation. Amount
// is in milliunits (thousandths of a currency unit), negative for outflows.
type BudgetTransaction struct {
	ID        string  `json:"id"`
	Date      Date    `json:"date"`
	Amount    int64   `json:"amount"`
	Memo      *string `json:"memo"`
	Approved  bool    `json:"approved"`
	PayeeID   string  `json:"payee_id"`
	PayeeName string  `json:"payee_name"`
}

// AmountDecimal returns the amount in currency units.
func (t BudgetTransaction) AmountDecimal() decimal.Decimal {
	return decimal.New(t.Amount, -3)
}

// MemoText returns the memo, or "" when unset.
func (t BudgetTransaction) MemoText() string {
	if t.Memo == nil {
		return ""
	}
	return *t.Memo
}

// FindPayee returns the first non-deleted payee with the given name.
func FindPayee(payees []Payee, name string) (Payee, bool) {
	for _, payee := range payees {
		if payee.Name == name && !payee.Deleted {
			return payee, true
		}
	}
	return Payee{}, false
}
