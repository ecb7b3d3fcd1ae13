package flashcard

import "time"

// startOfDay returns midnight of t's calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay reports whether a falls on the calendar day of ref, evaluated in
// ref's location.
func sameDay(a, ref time.Time) bool {
	ay, am, ad := a.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ay == ry && am == rm && ad == rd
}

// assignedOn reports whether the card carries an assignment mark for the day of now.
func assignedOn(assigned *time.Time, now time.Time) bool {
	return assigned != nil && sameDay(*assigned, now)
}

// wholeDaysBetween returns the number of complete 24h spans from -> to,
// never negative.
func wholeDaysBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from) / (24 * time.Hour))
}
