package sync

import "strings"

// diffLines renders a minimal line diff between the current and proposed
// memo, in unified-diff style markers. The common prefix and suffix are
// trimmed so only the changed region is shown; everything between them is
// reported positionally, so reorderings and duplicate lines show up.
func diffLines(current, proposed string) string {
	currentLines := splitLines(current)
	proposedLines := splitLines(proposed)

	start := 0
	for start < len(currentLines) && start < len(proposedLines) &&
		currentLines[start] == proposedLines[start] {
		start++
	}

	currentEnd, proposedEnd := len(currentLines), len(proposedLines)
	for currentEnd > start && proposedEnd > start &&
		currentLines[currentEnd-1] == proposedLines[proposedEnd-1] {
		currentEnd--
		proposedEnd--
	}

	var b strings.Builder
	b.WriteString("--- current\n+++ proposed")
	for _, line := range currentLines[start:currentEnd] {
		b.WriteString("\n-" + line)
	}
	for _, line := range proposedLines[start:proposedEnd] {
		b.WriteString("\n+" + line)
	}

	return b.String()
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
