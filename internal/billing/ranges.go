package billing

import (
	"time"

	"github.com/cole/shophours/internal/domain"
)

// NormalizeRange widens end to the last instant of its calendar day so a
// single-day range is inclusive, then returns the millisecond bounds.
func NormalizeRange(start, end time.Time) domain.DateRange {
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
	return domain.DateRange{
		Start: start.UnixMilli(),
		End:   endOfDay.UnixMilli(),
	}
}

// ThisWeek returns Sunday through today of the current week
func ThisWeek(now time.Time) (time.Time, time.Time) {
	start := now.AddDate(0, 0, -int(now.Weekday()))
	return startOfDay(start), now
}

// ThisMonth returns the first of the month through today
func ThisMonth(now time.Time) (time.Time, time.Time) {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
}

// LastMonth returns the full previous calendar month
func LastMonth(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
	last := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())
	return first, last
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
