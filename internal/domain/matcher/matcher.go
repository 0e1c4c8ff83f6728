// Package matcher provides the amount-based transaction matching and the
// date-tolerance policy used to gate a match.
//
// Matching is strict: a purchase matches a budget transaction only when its
// transaction total equals the target amount exactly (decimal equality, no
// rounding). Date mismatches are handled by a separate policy so the caller
// can decide whether to prompt.
package matcher

import (
	"github.com/shopspring/decimal"

	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
)

// LocateByAmount returns the index of the first purchase whose transaction
// total equals target exactly. The boolean distinguishes a match at index 0
// from no match at all.
func LocateByAmount(purchases []purchase.Purchase, target decimal.Decimal) (int, bool) {
	for i, p := range purchases {
		if p.TransactionTotal.Equal(target) {
			return i, true
		}
	}
	return 0, false
}
