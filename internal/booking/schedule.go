package booking

import (
	"math"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Schedule is the result of deriving quantity from a draft's date range.
type Schedule struct {
	Quantity  int    `json:"quantity"`
	EndDate   string `json:"endDate"` // rolled forward one day for overnight hourly bookings
	Overnight bool   `json:"overnight"`
}

// ComposeDateTime combines a calendar date and an HH:MM time-of-day into a
// local timestamp. An empty time defaults to midnight.
func ComposeDateTime(date, tod string) (time.Time, error) {
	if tod == "" {
		tod = "00:00"
	}
	return time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+tod, time.Local)
}

// DeriveSchedule derives the billable quantity (hours or days) for a date
// range. The second return value is false when the range is not usable and
// the caller should keep its prior quantity; that is the "do nothing, let
// the caller retry" policy, not an error.
//
// Hourly bookings whose end time falls at or before the start time on the
// same calendar day are treated as overnight: the end date is rolled forward
// by one day, exactly once.
func DeriveSchedule(rt RentalType, startDate, startTime, endDate, endTime string) (Schedule, bool) {
	start, err := ComposeDateTime(startDate, startTime)
	if err != nil {
		return Schedule{}, false
	}
	end, err := ComposeDateTime(endDate, endTime)
	if err != nil {
		return Schedule{}, false
	}

	overnight := false
	if !start.Before(end) {
		if rt == RentalTypeHourly && startDate == endDate {
			endDate = end.AddDate(0, 0, 1).Format(dateLayout)
			end, err = ComposeDateTime(endDate, endTime)
			if err != nil {
				return Schedule{}, false
			}
			overnight = true
		} else {
			return Schedule{}, false
		}
	}

	var quantity int
	switch rt {
	case RentalTypeHourly:
		hours := end.Sub(start).Hours()
		quantity = int(math.Ceil(math.Max(1, hours)))
	default:
		// Daily quantity is computed from calendar dates only, ignoring
		// time-of-day, to avoid off-by-one from partial-day arithmetic.
		sd, err := time.ParseInLocation(dateLayout, startDate, time.Local)
		if err != nil {
			return Schedule{}, false
		}
		ed, err := time.ParseInLocation(dateLayout, endDate, time.Local)
		if err != nil {
			return Schedule{}, false
		}
		days := int(math.Ceil(ed.Sub(sd).Hours() / 24))
		if days < 1 {
			days = 1
		}
		quantity = days
	}

	return Schedule{Quantity: quantity, EndDate: endDate, Overnight: overnight}, true
}

// AdjustStartBackward moves the start so it sits one unit (an hour for
// hourly, a day for daily) before the given end. Callers use it when the
// entered end precedes the start outside the same-day overnight case, then
// surface a non-fatal advisory to the user.
func AdjustStartBackward(rt RentalType, endDate, endTime string) (startDate, startTime string, err error) {
	end, err := ComposeDateTime(endDate, endTime)
	if err != nil {
		return "", "", err
	}

	var start time.Time
	if rt == RentalTypeHourly {
		start = end.Add(-time.Hour)
	} else {
		start = end.AddDate(0, 0, -1)
	}
	return start.Format(dateLayout), start.Format(timeLayout), nil
}
