package amazon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$116.20", "116.20"},
		{"$1,234.56", "1234.56"},
		{"-$45.99", "-45.99"},
		{"14.99", "14.99"},
		{" $0.99 ", "0.99"},
	}

	for _, tt := range tests {
		amount, err := parseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, amount.Equal(decimal.RequireFromString(tt.expected)),
			"parseAmount(%q) = %s, want %s", tt.input, amount, tt.expected)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := parseAmount("")
	assert.Error(t, err)

	_, err = parseAmount("not a number")
	assert.Error(t, err)
}

func TestConvertOrder(t *testing.T) {
	// Arrange
	raw := cliOrder{
		OrderID:   "123-4567890-1234567",
		OrderDate: "2025-12-13",
		Total:     "$116.20",
		Items: []cliOrderItem{
			{Name: "Widget", Price: "$99.99", Link: "https://www.amazon.com/dp/B000"},
			{Name: "Gadget", Price: "$16.21"},
		},
	}

	// Act
	order, err := convertOrder(raw)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "123-4567890-1234567", order.OrderNumber)
	assert.Equal(t, OrderDetailsURL+"123-4567890-1234567", order.OrderLink)
	assert.Equal(t, time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC), order.PlacedDate)
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString("116.20")))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Widget", order.Items[0].Title)
	assert.Equal(t, "https://www.amazon.com/dp/B000", order.Items[0].Link)
	assert.True(t, order.Items[1].Price.Equal(decimal.RequireFromString("16.21")))
}

func TestConvertOrder_BadDate(t *testing.T) {
	raw := cliOrder{OrderID: "123", OrderDate: "12/13/2025", Total: "$10.00"}

	_, err := convertOrder(raw)

	assert.Error(t, err)
}

func TestConvertTransactions_ChargesOnly(t *testing.T) {
	// Arrange
	raw := cliOrder{
		OrderID: "123-4567890-1234567",
		Transactions: []cliTransaction{
			{Date: "2025-12-13", Amount: "$116.20", Type: "charge"},
			{Date: "2025-12-20", Amount: "$16.21", Type: "refund"},
		},
	}

	// Act
	transactions, err := convertTransactions(raw)

	// Assert - refund skipped, charge amount negated
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "123-4567890-1234567", transactions[0].OrderNumber)
	assert.Equal(t, time.Date(2025, 12, 13, 0, 0, 0, 0, time.UTC), transactions[0].CompletedDate)
	assert.True(t, transactions[0].GrandTotal.Equal(decimal.RequireFromString("-116.20")))
}

func TestParseCLIOutput(t *testing.T) {
	// Arrange
	data := []byte(`{
		"orders": [
			{
				"orderId": "123-4567890-1234567",
				"orderDate": "2025-12-13",
				"total": "$116.20",
				"items": [{"name": "Widget", "price": "$116.20"}],
				"transactions": [{"date": "2025-12-13", "amount": "$116.20", "type": "charge"}]
			}
		]
	}`)

	// Act
	output, err := parseCLIOutput(data)

	// Assert
	require.NoError(t, err)
	require.Len(t, output.Orders, 1)
	assert.Equal(t, "123-4567890-1234567", output.Orders[0].OrderID)
	assert.Len(t, output.Orders[0].Items, 1)
	assert.Len(t, output.Orders[0].Transactions, 1)
}

func TestParseCLIOutput_Invalid(t *testing.T) {
	_, err := parseCLIOutput([]byte("not json"))
	assert.Error(t, err)
}

func TestNormalizeYears(t *testing.T) {
	// Act
	years, err := NormalizeYears([]string{"21", "2023"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2023}, years)
}

func TestNormalizeYears_DefaultsToCurrentYear(t *testing.T) {
	years, err := NormalizeYears(nil)

	require.NoError(t, err)
	assert.Equal(t, []int{time.Now().Year()}, years)
}

func TestNormalizeYears_RejectsOddLengths(t *testing.T) {
	_, err := NormalizeYears([]string{"202"})
	assert.Error(t, err)
}

func TestYearArgs(t *testing.T) {
	assert.Nil(t, yearArgs(nil))
	assert.Equal(t,
		[]string{"--since", "2021-01-01", "--until", "2023-12-31"},
		yearArgs([]int{2023, 2021, 2022}),
	)
}
