package main

import (
	"net/http"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/gin-gonic/gin"
)

// mondayOf returns the Monday of t's week at midnight in t's location.
// Uses AddDate to safely handle month/year boundaries.
func mondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7 // treat Sunday as day 7 so Mon=1..Sun=7
	}
	d := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// buildWeek groups sessions and competitions into the 7 days starting at
// weekStart. Days without entries are kept with empty lists.
func buildWeek(weekStart time.Time, sessions []trainingSession, comps []competition) calendarWeek {
	week := calendarWeek{
		WeekStart: weekStart.Format(coach.DayLayout),
		WeekEnd:   weekStart.AddDate(0, 0, 6).Format(coach.DayLayout),
		Days:      make([]calendarDay, 7),
	}
	index := make(map[string]int, 7)
	for i := range week.Days {
		date := weekStart.AddDate(0, 0, i).Format(coach.DayLayout)
		week.Days[i] = calendarDay{Date: date, Sessions: []trainingSession{}, Competitions: []competition{}}
		index[date] = i
	}

	// Oldest first within a day reads better on a calendar.
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		idx, ok := index[s.Date.String()]
		if !ok {
			continue
		}
		s.fillAdvice()
		day := &week.Days[idx]
		day.Sessions = append(day.Sessions, s)
		day.TotalMinutes += s.DurationMin
	}
	for i := len(comps) - 1; i >= 0; i-- {
		if idx, ok := index[comps[i].Date.String()]; ok {
			week.Days[idx].Competitions = append(week.Days[idx].Competitions, comps[i])
		}
	}

	for i := range week.Days {
		day := &week.Days[i]
		intensities := make([]int, len(day.Sessions))
		for j, s := range day.Sessions {
			intensities[j] = s.Intensity
		}
		day.IntenseCount = coach.CountIntense(intensities)
		week.TotalMinutes += day.TotalMinutes
		week.IntenseCount += day.IntenseCount
	}
	return week
}

// getCalendarWeek returns the Mon–Sun week containing week_start.
// GET /api/calendar/week?week_start=YYYY-MM-DD (defaults to the current week).
func (h *Handler) getCalendarWeek(c *gin.Context) {
	userID := c.GetInt("user_id")

	var weekStart time.Time
	if s := c.Query("week_start"); s != "" {
		t, err := time.ParseInLocation(coach.DayLayout, s, h.clock().Location())
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = mondayOf(t)
	} else {
		weekStart = mondayOf(h.clock())
	}
	start := weekStart.Format(coach.DayLayout)
	end := weekStart.AddDate(0, 0, 6).Format(coach.DayLayout)

	sessions, err := h.store.ListSessions(c, userID, start, end)
	if err != nil {
		storeError(c, "calendar", err, "sessions not found", "failed to fetch sessions")
		return
	}
	comps, err := h.store.ListCompetitions(c, userID, start, end)
	if err != nil {
		storeError(c, "calendar", err, "competitions not found", "failed to fetch competitions")
		return
	}

	c.JSON(http.StatusOK, buildWeek(weekStart, sessions, comps))
}
