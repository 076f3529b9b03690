package greeting

import "time"

// Greetings go out at 09:00 local time on the birthday.
const sendHour = 9

// NextSendTime returns the next future 09:00 instant (in ref's location)
// falling on the given birthday month/day. If this year's instant is
// strictly after ref it is returned, otherwise the same month/day one year
// later. A day that does not exist in the target month (29 February outside
// leap years) is clamped to the last day of that month.
func NextSendTime(month time.Month, day int, ref time.Time) time.Time {
	candidate := sendTimeIn(ref.Year(), month, day, ref.Location())
	if candidate.After(ref) {
		return candidate
	}
	return sendTimeIn(ref.Year()+1, month, day, ref.Location())
}

func sendTimeIn(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, sendHour, 0, 0, 0, loc)
}

// lastDayOfMonth exploits time.Date normalization: day 0 of the next month
// is the last day of this one.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
