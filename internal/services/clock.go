package services

import "time"

// Clock supplies the current time in the learner's time zone. Calendar-day
// decisions (today's assignments, due tomorrow) follow its location.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock returns a Clock reading the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.Location == nil {
		return now()
	}
	return now().In(c.Location)
}
