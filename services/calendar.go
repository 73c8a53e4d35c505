package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// All bucketing happens in one fixed zone so a record lands in the same
// day/week/month no matter which host or season handled the request. The
// zone is resolved on first use, after godotenv has populated the
// environment; a package-level init would read it too early.
var (
	zoneOnce sync.Once
	zone     *time.Location
)

func appZone() *time.Location {
	zoneOnce.Do(func() { zone = loadAppZone() })
	return zone
}

func loadAppZone() *time.Location {
	offset := 330 // UTC+5:30
	if v := os.Getenv("APP_UTC_OFFSET_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return time.FixedZone("app", offset*60)
}

const (
	GranularityDaily   = "daily"
	GranularityWeekly  = "weekly"
	GranularityMonthly = "monthly"
)

// monthOrder doubles as the label table and the chronological rank of a
// month abbreviation. "APR" < "JAN" as strings, so week and month keys are
// never compared lexicographically.
var monthOrder = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

func monthAbbr(m time.Month) string { return monthOrder[int(m)-1] }

func monthIndex(abbr string) int {
	for i, m := range monthOrder {
		if m == abbr {
			return i
		}
	}
	return -1
}

func DayStart(t time.Time) time.Time {
	tt := t.In(appZone())
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, appZone())
}

func DayEnd(t time.Time) time.Time {
	return DayStart(t).Add(24*time.Hour - time.Nanosecond)
}

// DayKey returns the civil date of t as YYYY-MM-DD.
func DayKey(t time.Time) string { return t.In(appZone()).Format("2006-01-02") }

// ParseCivilDate interprets a YYYY-MM-DD string in the app zone.
func ParseCivilDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, appZone())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return t, nil
}

// WeekKey labels t as "<MONTH> W<n> <YEAR>". Weeks are month-local and
// renumber on the 1st: n = ceil((dayOfMonth + weekday of the 1st) / 7),
// Sunday-first. A week label therefore never spans two months.
func WeekKey(t time.Time) string {
	tt := t.In(appZone())
	return fmt.Sprintf("%s W%d %d", monthAbbr(tt.Month()), weekOfMonth(tt), tt.Year())
}

// MonthKey labels t as "<MONTH> <YEAR>".
func MonthKey(t time.Time) string {
	tt := t.In(appZone())
	return fmt.Sprintf("%s %d", monthAbbr(tt.Month()), tt.Year())
}

func weekOfMonth(tt time.Time) int {
	first := time.Date(tt.Year(), tt.Month(), 1, 0, 0, 0, 0, appZone())
	return (tt.Day() + int(first.Weekday()) + 6) / 7
}

func BucketKey(t time.Time, granularity string) (string, error) {
	switch granularity {
	case GranularityDaily:
		return DayKey(t), nil
	case GranularityWeekly:
		return WeekKey(t), nil
	case GranularityMonthly:
		return MonthKey(t), nil
	}
	return "", fmt.Errorf("%w: unknown granularity %q", ErrInvalidInput, granularity)
}

// SortBucketKeys orders bucket labels chronologically. Day keys are
// zero-padded ISO dates and sort as strings; week and month keys decode
// through the month table, then year, then week index.
func SortBucketKeys(keys []string, granularity string) {
	if granularity == GranularityDaily {
		sort.Strings(keys)
		return
	}
	sort.Slice(keys, func(i, j int) bool {
		yi, mi, wi := parseBucketKey(keys[i])
		yj, mj, wj := parseBucketKey(keys[j])
		if yi != yj {
			return yi < yj
		}
		if mi != mj {
			return mi < mj
		}
		return wi < wj
	})
}

// parseBucketKey splits "<MONTH> <YEAR>" or "<MONTH> W<n> <YEAR>".
func parseBucketKey(key string) (year, month, week int) {
	parts := strings.Fields(key)
	if len(parts) < 2 {
		return
	}
	month = monthIndex(parts[0])
	year, _ = strconv.Atoi(parts[len(parts)-1])
	if len(parts) == 3 {
		week, _ = strconv.Atoi(strings.TrimPrefix(parts[1], "W"))
	}
	return
}

// WeekBounds returns the inclusive bounds of t's week bucket. Weeks are
// month-local, so the first and last week of a month may be short.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	tt := t.In(appZone())
	first := time.Date(tt.Year(), tt.Month(), 1, 0, 0, 0, 0, appZone())
	offset := int(first.Weekday())
	week := weekOfMonth(tt)

	startDay := (week-1)*7 + 1 - offset
	if startDay < 1 {
		startDay = 1
	}
	endDay := week*7 - offset
	if lastDay := first.AddDate(0, 1, -1).Day(); endDay > lastDay {
		endDay = lastDay
	}

	start := time.Date(tt.Year(), tt.Month(), startDay, 0, 0, 0, 0, appZone())
	end := DayEnd(time.Date(tt.Year(), tt.Month(), endDay, 0, 0, 0, 0, appZone()))
	return start, end
}
