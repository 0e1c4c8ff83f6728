package memo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
)

func makePurchase(orderNumber string, total string, titles ...string) purchase.Purchase {
	items := make([]purchase.LineItem, 0, len(titles))
	for _, title := range titles {
		items = append(items, purchase.LineItem{Title: title})
	}
	return purchase.Purchase{
		CompletedDate:    time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
		TransactionTotal: decimal.RequireFromString(total),
		OrderTotal:       decimal.RequireFromString(total),
		OrderNumber:      orderNumber,
		OrderLink:        "https://www.amazon.com/gp/your-account/order-details?orderID=" + orderNumber,
		Items:            items,
	}
}

func TestCompose_SingleItemPlain(t *testing.T) {
	// Arrange
	p := makePurchase("123-4567", "45.99", "Widget")

	// Act
	m := Compose(p, ComposeOptions{})

	// Assert - one bullet line plus the order reference
	assert.Equal(t, "- Widget\nOrder #123-4567", m.Render())
}

func TestCompose_MultipleItemsNumbered(t *testing.T) {
	// Arrange
	p := makePurchase("123-4567", "30.00", "Widget", "Gadget", "Gizmo")

	// Act
	m := Compose(p, ComposeOptions{})

	// Assert
	assert.Equal(t, "Items\n1. Widget\n2. Gadget\n3. Gizmo\nOrder #123-4567", m.Render())

	header, ok := m.ItemsHeader()
	assert.True(t, ok)
	assert.Equal(t, "Items", header)
	assert.Len(t, m.ItemLines(), 3)
}

func TestCompose_PartialOrderWarning(t *testing.T) {
	// Arrange
	p := makePurchase("123-4567", "25.00", "Widget")
	p.TransactionTotal = decimal.RequireFromString("10.00")

	// Act
	m := Compose(p, ComposeOptions{})

	// Assert - warning header, blank separator, then content
	warning, ok := m.PartialWarning()
	require.True(t, ok)
	assert.Equal(t, "-This transaction doesn't represent the entire order. The order total is $25.00-", warning)
	assert.Equal(t, warning+"\n\n- Widget\nOrder #123-4567", m.Render())
}

func TestCompose_SuppressedPartialWarning(t *testing.T) {
	// Arrange
	p := makePurchase("123-4567", "25.00", "Widget")
	p.TransactionTotal = decimal.RequireFromString("10.00")

	// Act
	m := Compose(p, ComposeOptions{SuppressPartialWarning: true})

	// Assert
	_, ok := m.PartialWarning()
	assert.False(t, ok)
	assert.Equal(t, "- Widget\nOrder #123-4567", m.Render())
}

func TestCompose_MarkdownFormatting(t *testing.T) {
	// Arrange
	p := makePurchase("123-4567", "25.00", "Widget")
	p.TransactionTotal = decimal.RequireFromString("10.00")
	p.Items[0].Link = "https://www.amazon.com/dp/B000000"

	// Act
	m := Compose(p, ComposeOptions{UseMarkdown: true})

	// Assert - bold warning, linked item, linked order reference
	lines := m.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "**-This transaction doesn't represent the entire order. The order total is $25.00-**", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "- [Widget](https://www.amazon.com/dp/B000000)", lines[2])
	assert.Equal(t, "[Order #123-4567](https://www.amazon.com/gp/your-account/order-details?orderID=123-4567)", lines[3])
}

func TestCompose_MarkdownWithoutItemLink(t *testing.T) {
	// Arrange
	p := makePurchase("123-4567", "25.00", "Widget")

	// Act
	m := Compose(p, ComposeOptions{UseMarkdown: true})

	// Assert - no product page, title rendered plain
	assert.Equal(t, "- Widget", m.Lines()[0])
}

func TestCompose_NoItems(t *testing.T) {
	// Arrange
	p := makePurchase("123-4567", "25.00")

	// Act
	m := Compose(p, ComposeOptions{})

	// Assert - just the order reference
	assert.Equal(t, "Order #123-4567", m.Render())
}
