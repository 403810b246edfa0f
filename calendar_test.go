package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
)

func TestMondayOf(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-03-02", "2026-03-02"}, // Monday
		{"2026-03-04", "2026-03-02"},
		{"2026-03-08", "2026-03-02"}, // Sunday
		{"2026-01-01", "2025-12-29"},
	}
	for _, tc := range cases {
		d, _ := time.Parse(coach.DayLayout, tc.in)
		if got := mondayOf(d).Format(coach.DayLayout); got != tc.want {
			t.Errorf("mondayOf(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCalendarWeek(t *testing.T) {
	env := setupTest(t)
	for _, body := range []string{
		`{"date":"2026-03-02","title":"VMA","sport":"course","duration_min":60,"type":"frac","intensity":3}`,
		`{"date":"2026-03-02","title":"Footing","sport":"course","duration_min":30,"type":"footing","intensity":1}`,
		`{"date":"2026-03-08","title":"Sortie","sport":"velo","duration_min":45,"type":"tempo","intensity":2}`,
		`{"date":"2026-03-09","title":"Semaine suivante","sport":"velo","duration_min":120,"type":"endurance","intensity":3}`,
	} {
		createTestSession(t, env, body)
	}
	if w := env.do("POST", "/api/competitions", env.token, `{"date":"2026-03-07","name":"10 km","sport":"course","distance_km":10}`); w.Code != http.StatusCreated {
		t.Fatalf("create competition: %d", w.Code)
	}

	for _, path := range []string{"/api/calendar/week?week_start=2026-03-05", "/api/calendar/week"} {
		w := env.do("GET", path, env.token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		week := decode[calendarWeek](t, w)
		if week.WeekStart != "2026-03-02" || week.WeekEnd != "2026-03-08" || len(week.Days) != 7 {
			t.Fatalf("%s: unexpected week bounds %s..%s (%d days)", path, week.WeekStart, week.WeekEnd, len(week.Days))
		}
		if week.TotalMinutes != 135 || week.IntenseCount != 2 {
			t.Errorf("%s: totals = %d min / %d intense, want 135 / 2", path, week.TotalMinutes, week.IntenseCount)
		}
		mon := week.Days[0]
		if len(mon.Sessions) != 2 || mon.TotalMinutes != 90 || mon.IntenseCount != 1 {
			t.Errorf("%s: unexpected Monday %+v", path, mon)
		}
		if mon.Sessions[0].Title != "VMA" || mon.Sessions[0].Advice == nil {
			t.Errorf("%s: expected VMA first with advice, got %+v", path, mon.Sessions[0])
		}
		if len(week.Days[5].Competitions) != 1 || len(week.Days[2].Sessions) != 0 {
			t.Errorf("%s: unexpected Saturday/Wednesday %+v / %+v", path, week.Days[5], week.Days[2])
		}
	}

	if w := env.do("GET", "/api/calendar/week?week_start=mars", env.token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad week_start: expected 400, got %d", w.Code)
	}
}
