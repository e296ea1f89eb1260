package location

import "time"

const dayKeyLayout = "2006-01-02"

// DayWindow is the absolute UTC range of the next full civil day in the
// reference timezone, paired with the day key of the civil day the window
// was computed on.
type DayWindow struct {
	Start  time.Time
	End    time.Time
	DayKey string
}

// TomorrowWindow interprets now in the reference timezone and returns the
// half-open UTC range [Start, End) covering the whole of tomorrow's civil
// day there. Around daylight-saving transitions the range is 23 or 25 hours
// long, since it is bounded by civil midnights rather than a fixed duration.
//
// DayKey is now's civil date, so two runs within the same reference-timezone
// day always produce the same key regardless of how close either run is to a
// UTC day boundary.
func TomorrowWindow(now time.Time) DayWindow {
	local := now.In(location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	start := midnight.AddDate(0, 0, 1)
	end := midnight.AddDate(0, 0, 2)

	return DayWindow{
		Start:  start.UTC(),
		End:    end.UTC(),
		DayKey: local.Format(dayKeyLayout),
	}
}

// DayKey returns t's civil date in the reference timezone as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.In(location).Format(dayKeyLayout)
}
