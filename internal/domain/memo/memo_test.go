package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsItemLine(t *testing.T) {
	assert.True(t, IsItemLine("1. Widget"))
	assert.True(t, IsItemLine("12. Another thing"))
	assert.False(t, IsItemLine("- Widget"))
	assert.False(t, IsItemLine("Items"))
	assert.False(t, IsItemLine(""))
	assert.False(t, IsItemLine("1) Widget"))
}

func TestRemoveMarkdownLinks(t *testing.T) {
	// Arrange
	m := New("1. [Widget](https://www.amazon.com/dp/B000)", "plain line")

	// Act
	m.RemoveMarkdownLinks()

	// Assert
	assert.Equal(t, "1. Widget\nplain line", m.Render())
}

func TestRemoveMarkdownBold(t *testing.T) {
	// Arrange
	m := New("**important warning**")

	// Act
	m.RemoveMarkdownBold()

	// Assert
	assert.Equal(t, "important warning", m.Render())
}

func TestExceededBy(t *testing.T) {
	assert.Equal(t, 0, New("short").ExceededBy())

	long := make([]byte, MaxLength+25)
	for i := range long {
		long[i] = 'a'
	}
	assert.Equal(t, 25, New(string(long)).ExceededBy())
}

func TestExtractOrderURL_Markdown(t *testing.T) {
	// Arrange
	text := "- Widget\n[Order #123-4567](https://www.amazon.com/gp/your-account/order-details?orderID=123-4567)"

	// Act
	url, ok := ExtractOrderURL(text)

	// Assert
	require.True(t, ok)
	assert.Equal(t, "https://www.amazon.com/gp/your-account/order-details?orderID=123-4567", url)
}

func TestExtractOrderURL_Plain(t *testing.T) {
	// Arrange
	text := "- Widget\nhttps://www.amazon.com/gp/your-account/order-details?orderID=123-4567"

	// Act
	url, ok := ExtractOrderURL(text)

	// Assert
	require.True(t, ok)
	assert.Equal(t, "https://www.amazon.com/gp/your-account/order-details?orderID=123-4567", url)
}

func TestExtractOrderURL_WrappedAcrossLines(t *testing.T) {
	// Arrange - the budgeting service wraps long URLs mid-line
	text := "- Widget\nhttps://www.amazon.com/gp/your-account/order-\ndetails?orderID=123-4567"

	// Act
	url, ok := ExtractOrderURL(text)

	// Assert
	require.True(t, ok)
	assert.Equal(t, "https://www.amazon.com/gp/your-account/order-details?orderID=123-4567", url)
}

func TestExtractOrderURL_Missing(t *testing.T) {
	_, ok := ExtractOrderURL("- Widget\nno reference here")
	assert.False(t, ok)
}

func TestExtractOrderNumber(t *testing.T) {
	number, ok := ExtractOrderNumber("- Widget\nOrder #123-4567")
	require.True(t, ok)
	assert.Equal(t, "123-4567", number)

	number, ok = ExtractOrderNumber("[Order #987-6543](https://www.amazon.com/gp/your-account/order-details?orderID=987-6543)")
	require.True(t, ok)
	assert.Equal(t, "987-6543", number)

	_, ok = ExtractOrderNumber("no reference")
	assert.False(t, ok)
}

func TestNormalize_LeavesPlainTextAlone(t *testing.T) {
	text := "- Widget\nOrder #123-4567"
	assert.Equal(t, text, Normalize(text))
}
