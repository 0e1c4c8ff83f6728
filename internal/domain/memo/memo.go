// Package memo models the free-text annotation written back to a budget
// transaction: an ordered collection of lines with helpers for line
// classification, markdown stripping, order-reference extraction, and the
// truncation policy that keeps memos within the service's length limit.
package memo

import (
	"regexp"
	"strings"
)

// MaxLength is the memo character limit enforced by the budgeting service.
const MaxLength = 500

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	markdownBoldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

	markdownOrderURLPattern = regexp.MustCompile(`\[Order\s*#[\w-]+\]\((https://www\.amazon\.com/gp/your-account/order-details\?orderID=[\w-]+)\)`)
	plainOrderURLPattern    = regexp.MustCompile(`https://www\.amazon\.com/gp/your-account/order-details\?orderID=[\w-]+`)
	orderNumberPattern      = regexp.MustCompile(`Order\s*#([\w-]+)`)
)

// partialWarningMarker identifies the leading partial-order warning line.
const partialWarningMarker = "-This transaction doesn"

// Memo is an ordered sequence of text lines, mutated in place by formatting
// and truncation and rendered to a single string at write-back time.
type Memo struct {
	lines []string
}

// New creates a memo from the given lines.
func New(lines ...string) *Memo {
	return &Memo{lines: lines}
}

// Append adds a line to the end of the memo.
func (m *Memo) Append(line string) {
	m.lines = append(m.lines, line)
}

// Lines returns the memo's lines.
func (m *Memo) Lines() []string {
	return m.lines
}

// Render joins the lines into the final memo text.
func (m *Memo) Render() string {
	return strings.Join(m.lines, "\n")
}

// Len returns the length of the memo when rendered as a string.
func (m *Memo) Len() int {
	return len(m.Render())
}

// ExceededBy returns the number of characters by which the memo exceeds
// MaxLength, or 0 when it fits.
func (m *Memo) ExceededBy() int {
	if over := m.Len() - MaxLength; over > 0 {
		return over
	}
	return 0
}

// RemoveMarkdownLinks replaces [text](url) with text on every line.
func (m *Memo) RemoveMarkdownLinks() {
	for i, line := range m.lines {
		m.lines[i] = markdownLinkPattern.ReplaceAllString(line, "$1")
	}
}

// RemoveMarkdownBold replaces **text** with text on every line.
func (m *Memo) RemoveMarkdownBold() {
	for i, line := range m.lines {
		m.lines[i] = markdownBoldPattern.ReplaceAllString(line, "$1")
	}
}

// RemoveMarkdownFormatting strips all markdown formatting from the memo.
func (m *Memo) RemoveMarkdownFormatting() {
	m.RemoveMarkdownLinks()
	m.RemoveMarkdownBold()
}

// IsItemLine reports whether a line is a numbered item line (starts with a
// digit and contains ". ").
func IsItemLine(line string) bool {
	return line != "" && line[0] >= '0' && line[0] <= '9' && strings.Contains(line, ". ")
}

// ItemLines returns the numbered item lines of the memo.
func (m *Memo) ItemLines() []string {
	var items []string
	for _, line := range m.lines {
		if IsItemLine(line) {
			items = append(items, line)
		}
	}
	return items
}

// ItemsHeader returns the "Items" header line, if present.
func (m *Memo) ItemsHeader() (string, bool) {
	for _, line := range m.lines {
		if line == "Items" {
			return line, true
		}
	}
	return "", false
}

// PartialWarning returns the leading partial-order warning line, if present.
func (m *Memo) PartialWarning() (string, bool) {
	for _, line := range m.lines {
		if isPartialWarning(line) {
			return line, true
		}
	}
	return "", false
}

func isPartialWarning(line string) bool {
	return strings.Contains(line, partialWarningMarker)
}

// ExtractOrderURL extracts the order detail URL from rendered memo text,
// handling both markdown and plain formats. URLs split across lines by the
// budgeting service are re-joined first.
func ExtractOrderURL(text string) (string, bool) {
	normalized := Normalize(text)

	if match := markdownOrderURLPattern.FindStringSubmatch(normalized); match != nil {
		return match[1], true
	}
	if match := plainOrderURLPattern.FindString(normalized); match != "" {
		return match, true
	}
	return "", false
}

// ExtractOrderNumber extracts the order number from rendered memo text, in
// either the "Order #X" or linked form.
func ExtractOrderNumber(text string) (string, bool) {
	if match := orderNumberPattern.FindStringSubmatch(Normalize(text)); match != nil {
		return match[1], true
	}
	return "", false
}

// Normalize re-joins memo lines that the budgeting service wrapped in the
// middle of an order URL.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result []string
	var current string
	inURL := false

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "amazon.com"):
			current += stripped
			inURL = true
		case inURL && (strings.HasSuffix(stripped, "-") || strings.HasSuffix(stripped, ")")):
			current += stripped
			if strings.HasSuffix(stripped, ")") {
				inURL = false
				result = append(result, current)
				current = ""
			}
		case inURL:
			current += stripped
		default:
			if current != "" {
				result = append(result, current)
				current = ""
			}
			result = append(result, line)
		}
	}

	if current != "" {
		result = append(result, current)
	}

	return strings.Join(result, "\n")
}
