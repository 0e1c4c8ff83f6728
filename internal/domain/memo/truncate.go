package memo

import (
	"strings"
	"unicode/utf8"
)

// Truncate shortens the memo to fit within MaxLength, mutating it in place.
// It is a no-op on memos that already fit, which also makes it idempotent.
//
// The policy, stopping as soon as the limit is satisfied:
//  1. Strip markdown link and bold syntax from everything except the
//     trailing order-reference line. This recovers space without losing
//     information content.
//  2. Preserve the leading partial-order warning (if present) and the
//     trailing order-reference line verbatim, and trim the middle content
//     to the remaining budget, marking the cut with an ellipsis.
//
// The order-reference line always survives byte-identical, markdown link
// included: write-back correctness depends on the order URL being
// recoverable from the stored memo.
func (m *Memo) Truncate() *Memo {
	if m.Len() <= MaxLength {
		return m
	}

	lines := m.lines
	trailer := lines[len(lines)-1]
	body := &Memo{lines: lines[:len(lines)-1]}
	body.RemoveMarkdownFormatting()

	m.lines = append(body.lines, trailer)
	if m.Len() <= MaxLength {
		return m
	}

	bodyLines := body.lines
	header := ""
	if len(bodyLines) > 0 && isPartialWarning(bodyLines[0]) {
		header = bodyLines[0] + "\n\n"
		bodyLines = bodyLines[1:]
		if len(bodyLines) > 0 && bodyLines[0] == "" {
			bodyLines = bodyLines[1:]
		}
	}

	// Budget for the middle content; 4 accounts for the ellipsis marker
	// and the newline before the trailer.
	remaining := MaxLength - len(header) - len(trailer) - 4
	if remaining < 0 {
		remaining = 0
	}

	middle := strings.Join(bodyLines, "\n")
	if len(middle) > remaining {
		middle = cutAtRuneBoundary(middle, remaining) + "..."
	}

	m.lines = strings.Split(header+middle+"\n"+trailer, "\n")
	return m
}

// cutAtRuneBoundary truncates s to at most n bytes without splitting a
// multi-byte rune.
func cutAtRuneBoundary(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
