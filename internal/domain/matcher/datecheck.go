package matcher

import "time"

// Decision is the outcome of the date-tolerance policy for a matched pair.
type Decision int

const (
	// Accept means the dates are equal or within tolerance.
	Accept Decision = iota
	// AcceptMismatch means the dates differ beyond tolerance but the run is
	// configured to accept mismatches without prompting.
	AcceptMismatch
	// Prompt means the mismatch requires interactive confirmation.
	Prompt
)

// DateDiffDays returns the absolute difference between two dates in whole
// days, ignoring the time-of-day component.
func DateDiffDays(a, b time.Time) int {
	diff := int(truncateToDay(a).Sub(truncateToDay(b)).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// DecideDate applies the date-tolerance policy to a matched pair. The
// tolerance boundary is inclusive. Resolution of a Prompt decision (accept
// and detach, or reject) belongs to the caller.
func DecideDate(purchaseDate, budgetDate time.Time, toleranceDays int, autoAccept, nonInteractive bool) Decision {
	diff := DateDiffDays(purchaseDate, budgetDate)
	if diff == 0 {
		return Accept
	}
	if diff <= toleranceDays {
		return Accept
	}
	if autoAccept || nonInteractive {
		return AcceptMismatch
	}
	return Prompt
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
