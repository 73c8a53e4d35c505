package services

import (
	"testing"
	"time"
)

func appDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, appZone())
}

func TestLoadAppZone(t *testing.T) {
	t.Setenv("APP_UTC_OFFSET_MINUTES", "-300")
	if _, offset := time.Now().In(loadAppZone()).Zone(); offset != -300*60 {
		t.Fatalf("offset = %d, want %d", offset, -300*60)
	}

	t.Setenv("APP_UTC_OFFSET_MINUTES", "")
	if _, offset := time.Now().In(loadAppZone()).Zone(); offset != 330*60 {
		t.Fatalf("default offset = %d, want %d", offset, 330*60)
	}
}

func TestDayKey(t *testing.T) {
	if got := DayKey(appDate(2025, time.March, 5)); got != "2025-03-05" {
		t.Fatalf("DayKey = %q, want 2025-03-05", got)
	}
}

func TestWeekKeyRenumbersEachMonth(t *testing.T) {
	// December 2024 starts on a Sunday
	cases := []struct {
		day  int
		want string
	}{
		{1, "DEC W1 2024"},
		{7, "DEC W1 2024"},
		{8, "DEC W2 2024"},
		{31, "DEC W5 2024"},
	}
	for _, tc := range cases {
		if got := WeekKey(appDate(2024, time.December, tc.day)); got != tc.want {
			t.Errorf("WeekKey(Dec %d) = %q, want %q", tc.day, got, tc.want)
		}
	}
}

func TestWeekKeyNeverSpansMonths(t *testing.T) {
	// Dec 31 2024 (Tuesday) and Jan 1 2025 (Wednesday) share a
	// Sunday-to-Saturday span but must land in different buckets.
	dec := WeekKey(appDate(2024, time.December, 31))
	jan := WeekKey(appDate(2025, time.January, 1))
	if dec == jan {
		t.Fatalf("week label %q spans two months", dec)
	}
	if dec != "DEC W5 2024" {
		t.Errorf("WeekKey(Dec 31) = %q, want DEC W5 2024", dec)
	}
	if jan != "JAN W1 2025" {
		t.Errorf("WeekKey(Jan 1) = %q, want JAN W1 2025", jan)
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(appDate(2025, time.April, 10)); got != "APR 2025" {
		t.Fatalf("MonthKey = %q, want APR 2025", got)
	}
}

func TestSortBucketKeysMonthly(t *testing.T) {
	keys := []string{"FEB 2025", "DEC 2024", "JAN 2025"}
	SortBucketKeys(keys, GranularityMonthly)

	want := []string{"DEC 2024", "JAN 2025", "FEB 2025"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sorted keys = %v, want %v", keys, want)
		}
	}
}

func TestSortBucketKeysWeekly(t *testing.T) {
	keys := []string{"JAN W2 2025", "DEC W5 2024", "JAN W1 2025", "APR W1 2025"}
	SortBucketKeys(keys, GranularityWeekly)

	want := []string{"DEC W5 2024", "JAN W1 2025", "JAN W2 2025", "APR W1 2025"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sorted keys = %v, want %v", keys, want)
		}
	}
}

func TestSortBucketKeysDaily(t *testing.T) {
	keys := []string{"2025-02-01", "2024-12-31", "2025-01-15"}
	SortBucketKeys(keys, GranularityDaily)
	if keys[0] != "2024-12-31" || keys[2] != "2025-02-01" {
		t.Fatalf("sorted keys = %v", keys)
	}
}

func TestBucketKeyRejectsUnknownGranularity(t *testing.T) {
	if _, err := BucketKey(time.Now(), "hourly"); err == nil {
		t.Fatal("expected error for unknown granularity")
	}
}

func TestWeekBounds(t *testing.T) {
	// March 2025 starts on a Saturday, so W1 is Mar 1 alone and W3 runs
	// Mar 9 through Mar 15.
	start, end := WeekBounds(appDate(2025, time.March, 12))
	if got := DayKey(start); got != "2025-03-09" {
		t.Errorf("week start = %s, want 2025-03-09", got)
	}
	if got := DayKey(end); got != "2025-03-15" {
		t.Errorf("week end = %s, want 2025-03-15", got)
	}

	start, end = WeekBounds(appDate(2025, time.March, 1))
	if DayKey(start) != "2025-03-01" || DayKey(end) != "2025-03-01" {
		t.Errorf("W1 bounds = %s..%s, want 2025-03-01 alone", DayKey(start), DayKey(end))
	}

	// last week clips to the end of the month
	_, end = WeekBounds(appDate(2025, time.March, 31))
	if DayKey(end) != "2025-03-31" {
		t.Errorf("last week end = %s, want 2025-03-31", DayKey(end))
	}
}

func TestParseCivilDate(t *testing.T) {
	d, err := ParseCivilDate("2025-03-01")
	if err != nil {
		t.Fatalf("ParseCivilDate: %v", err)
	}
	if DayKey(d) != "2025-03-01" {
		t.Fatalf("parsed day = %s", DayKey(d))
	}
	if _, err := ParseCivilDate("03/01/2025"); err == nil {
		t.Fatal("expected error for bad format")
	}
}
