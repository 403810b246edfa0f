package coach

import (
	"testing"
	"time"
)

func TestDailyWindow(t *testing.T) {
	today := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	got := DailyWindow(today)
	want := DateRange{Start: "2026-02-28", End: "2026-03-02"}
	if got != want {
		t.Errorf("DailyWindow = %+v, want %+v", got, want)
	}
	if !got.Contains("2026-03-01") || got.Contains("2026-03-03") {
		t.Error("Contains mismatch")
	}
}

func TestWeeklyWindow(t *testing.T) {
	today := time.Date(2026, 12, 28, 0, 0, 0, 0, time.UTC)
	got := WeeklyWindow(today)
	want := DateRange{Start: "2026-12-28", End: "2027-01-04"}
	if got != want {
		t.Errorf("WeeklyWindow = %+v, want %+v", got, want)
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	start, end, err := DayBounds("2026-03-02", loc)
	if err != nil {
		t.Fatal(err)
	}
	if start.Hour() != 0 || start.Location() != loc {
		t.Errorf("unexpected start %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("expected one day span, got %v", end.Sub(start))
	}
	if _, _, err := DayBounds("02/03/2026", loc); err == nil {
		t.Error("expected parse error")
	}
}
