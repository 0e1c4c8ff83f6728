package matcher

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
)

// Helper to create a test purchase with the given transaction total.
func makePurchase(orderNumber string, total string) purchase.Purchase {
	return purchase.Purchase{
		OrderNumber:      orderNumber,
		TransactionTotal: decimal.RequireFromString(total),
		OrderTotal:       decimal.RequireFromString(total),
	}
}

func TestLocateByAmount_FirstMatchWins(t *testing.T) {
	// Arrange
	purchases := []purchase.Purchase{
		makePurchase("order1", "10.00"),
		makePurchase("order2", "19.99"),
		makePurchase("order3", "19.99"),
	}

	// Act
	idx, found := LocateByAmount(purchases, decimal.RequireFromString("19.99"))

	// Assert - lowest index wins
	assert.True(t, found)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "order2", purchases[idx].OrderNumber)
}

func TestLocateByAmount_MatchAtIndexZero(t *testing.T) {
	// Arrange
	purchases := []purchase.Purchase{
		makePurchase("order1", "45.99"),
	}

	// Act
	idx, found := LocateByAmount(purchases, decimal.RequireFromString("45.99"))

	// Assert - index 0 with found=true is distinct from no match
	assert.True(t, found)
	assert.Equal(t, 0, idx)
}

func TestLocateByAmount_NoMatch(t *testing.T) {
	// Arrange
	purchases := []purchase.Purchase{
		makePurchase("order1", "10.00"),
		makePurchase("order2", "20.00"),
	}

	// Act
	idx, found := LocateByAmount(purchases, decimal.RequireFromString("15.00"))

	// Assert
	assert.False(t, found)
	assert.Equal(t, 0, idx)
}

func TestLocateByAmount_EmptyPool(t *testing.T) {
	// Act
	_, found := LocateByAmount(nil, decimal.RequireFromString("15.00"))

	// Assert
	assert.False(t, found)
}

func TestLocateByAmount_ExactEqualityNoRounding(t *testing.T) {
	// Arrange
	purchases := []purchase.Purchase{
		makePurchase("order1", "19.990"),
	}

	// Act - decimal equality ignores trailing zeros
	idx, found := LocateByAmount(purchases, decimal.RequireFromString("19.99"))

	// Assert
	assert.True(t, found)
	assert.Equal(t, 0, idx)
}

func TestDateDiffDays_IgnoresTimeOfDay(t *testing.T) {
	// Arrange
	a := time.Date(2025, 10, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 10, 11, 0, 1, 0, 0, time.UTC)

	// Act & Assert
	assert.Equal(t, 1, DateDiffDays(a, b))
	assert.Equal(t, 1, DateDiffDays(b, a))
	assert.Equal(t, 0, DateDiffDays(a, a))
}

func TestDecideDate_EqualDates(t *testing.T) {
	// Arrange
	d := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	// Act
	decision := DecideDate(d, d, 0, false, false)

	// Assert
	assert.Equal(t, Accept, decision)
}

func TestDecideDate_BeyondTolerancePrompts(t *testing.T) {
	// Arrange
	d := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	// Act - 3 days apart, tolerance of 2
	decision := DecideDate(d, d.AddDate(0, 0, 3), 2, false, false)

	// Assert
	assert.Equal(t, Prompt, decision)
}

func TestDecideDate_ToleranceBoundaryInclusive(t *testing.T) {
	// Arrange
	d := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	// Act - exactly at the tolerance boundary
	decision := DecideDate(d, d.AddDate(0, 0, 2), 2, false, false)

	// Assert
	assert.Equal(t, Accept, decision)
}

func TestDecideDate_AutoAcceptMismatch(t *testing.T) {
	// Arrange
	d := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	// Act
	decision := DecideDate(d, d.AddDate(0, 0, 5), 0, true, false)

	// Assert
	assert.Equal(t, AcceptMismatch, decision)
}

func TestDecideDate_NonInteractiveMismatch(t *testing.T) {
	// Arrange
	d := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	// Act
	decision := DecideDate(d, d.AddDate(0, 0, 5), 0, false, true)

	// Assert
	assert.Equal(t, AcceptMismatch, decision)
}
