package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffLines(t *testing.T) {
	// Arrange
	current := "old memo"
	proposed := "- Widget\nOrder #123-4567"

	// Act
	diff := diffLines(current, proposed)

	// Assert
	assert.Contains(t, diff, "--- current\n+++ proposed")
	assert.Contains(t, diff, "-old memo")
	assert.Contains(t, diff, "+- Widget")
	assert.Contains(t, diff, "+Order #123-4567")
}

func TestDiffLines_ReorderingIsAChange(t *testing.T) {
	// Arrange
	current := "first line\nsecond line"
	proposed := "second line\nfirst line"

	// Act
	diff := diffLines(current, proposed)

	// Assert - a pure reordering must not render as "no changes"
	assert.Contains(t, diff, "-first line")
	assert.Contains(t, diff, "-second line")
	assert.Contains(t, diff, "+second line")
	assert.Contains(t, diff, "+first line")
}

func TestDiffLines_DuplicateLinesKept(t *testing.T) {
	// Arrange
	current := "item\nitem"
	proposed := "item"

	// Act
	diff := diffLines(current, proposed)

	// Assert - the dropped duplicate appears as a removal
	assert.Contains(t, diff, "-item")
}

func TestDiffLines_UnchangedLinesOmitted(t *testing.T) {
	// Arrange
	current := "shared line\nonly in current"
	proposed := "shared line\nonly in proposed"

	// Act
	diff := diffLines(current, proposed)

	// Assert
	assert.NotContains(t, diff, "-shared line")
	assert.NotContains(t, diff, "+shared line")
	assert.Contains(t, diff, "-only in current")
	assert.Contains(t, diff, "+only in proposed")
}
