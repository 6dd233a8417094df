package leagues

import "time"

type Status string

const (
	StatusUpcoming           Status = "upcoming"
	StatusRegistrationOpen   Status = "registration_open"
	StatusRegistrationClosed Status = "registration_closed"
	StatusInProgress         Status = "in_progress"
	StatusCompleted          Status = "completed"
)

// DateRanges holds a league's calendar. Dates are whole days; end dates are
// inclusive.
type DateRanges struct {
	RegistrationStart time.Time
	RegistrationEnd   time.Time
	SeasonStart       time.Time
	SeasonEnd         time.Time
}

// DeriveStatus computes where a league sits in its calendar at now. Zero
// registration dates mean registration is not tracked.
func DeriveStatus(now time.Time, ranges DateRanges) Status {
	if !ranges.SeasonEnd.IsZero() && !now.Before(dayAfter(ranges.SeasonEnd)) {
		return StatusCompleted
	}
	if !ranges.SeasonStart.IsZero() && !now.Before(truncateDate(ranges.SeasonStart)) {
		return StatusInProgress
	}
	if !ranges.RegistrationStart.IsZero() && now.Before(truncateDate(ranges.RegistrationStart)) {
		return StatusUpcoming
	}
	if !ranges.RegistrationEnd.IsZero() && !now.Before(dayAfter(ranges.RegistrationEnd)) {
		return StatusRegistrationClosed
	}
	if !ranges.RegistrationStart.IsZero() || !ranges.RegistrationEnd.IsZero() {
		return StatusRegistrationOpen
	}
	return StatusUpcoming
}

func dayAfter(value time.Time) time.Time {
	return truncateDate(value).AddDate(0, 0, 1)
}
