package scheduler

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// PeriodRange returns the first and last day of a YYYY-MM period.
func PeriodRange(period string) (start, end time.Time, err error) {
	start, err = time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q: expected YYYY-MM", period)
	}

	end = start.AddDate(0, 1, -1)

	return start, end, nil
}

// PreviousPeriod returns the month before now as YYYY-MM.
func PreviousPeriod(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, -1, 0).Format(periodLayout)
}
