package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/gin-gonic/gin"
)

// fillAdvice exposes the stored advice columns as one object.
func (s *trainingSession) fillAdvice() {
	if s.AdviceBefore == nil && s.AdviceDuring == nil && s.AdviceAfter == nil {
		s.Advice = nil
		return
	}
	a := coach.SessionAdvice{}
	if s.AdviceBefore != nil {
		a.Before = *s.AdviceBefore
	}
	if s.AdviceDuring != nil {
		a.During = *s.AdviceDuring
	}
	if s.AdviceAfter != nil {
		a.After = *s.AdviceAfter
	}
	s.Advice = &a
}

func intensityValid(i int) bool { return i >= 0 && i <= 3 }

// validateSessionFields checks the fields shared by create and update.
// Empty strings mean "not provided".
func validateSessionFields(date, sport, sessionType string) string {
	if date != "" && !validDay(date) {
		return "invalid date, expected YYYY-MM-DD"
	}
	if sport != "" && !coach.SportType(sport).Valid() {
		return "sport must be one of: course, velo, natation, trail, triathlon, autre"
	}
	if sessionType != "" && !coach.SessionType(sessionType).Valid() {
		return "type must be one of: frac, endurance, footing, tempo, recuperation, interval, specific"
	}
	return ""
}

// parseRange reads the optional start/end query params shared by list endpoints.
func parseRange(c *gin.Context) (start, end string, ok bool) {
	start, end = c.Query("start"), c.Query("end")
	if start != "" && !validDay(start) {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return "", "", false
	}
	if end != "" && !validDay(end) {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return "", "", false
	}
	if start != "" && end != "" && start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return "", "", false
	}
	return start, end, true
}

// listSessions returns the user's sessions, newest first.
// GET /api/sessions?start=YYYY-MM-DD&end=YYYY-MM-DD (both optional).
func (h *Handler) listSessions(c *gin.Context) {
	userID := c.GetInt("user_id")
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	sessions, err := h.store.ListSessions(c, userID, start, end)
	if err != nil {
		storeError(c, "sessions", err, "sessions not found", "failed to fetch sessions")
		return
	}
	for i := range sessions {
		sessions[i].fillAdvice()
	}

	c.JSON(http.StatusOK, sessions)
}

// getSession returns one session with its frozen advice.
// GET /api/sessions/:id.
func (h *Handler) getSession(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	s, err := h.store.GetSession(c, userID, id)
	if err != nil {
		storeError(c, "sessions", err, "session not found", "failed to fetch session")
		return
	}
	s.fillAdvice()

	c.JSON(http.StatusOK, s)
}

// createSession validates and stores a session. The rule-engine advice is
// computed here, once, and stored with the row.
// POST /api/sessions.
func (h *Handler) createSession(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Date == "" || body.Title == "" || body.Sport == "" || body.Type == "" {
		apiError(c, http.StatusBadRequest, "date, title, sport and type are required")
		return
	}
	if msg := validateSessionFields(body.Date, body.Sport, body.Type); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}
	if body.DurationMin <= 0 {
		apiError(c, http.StatusBadRequest, "duration_min must be greater than 0")
		return
	}
	if !intensityValid(body.Intensity) {
		apiError(c, http.StatusBadRequest, "intensity must be between 0 and 3")
		return
	}

	date, _ := time.Parse(coach.DayLayout, body.Date)
	advice := coach.GenerateAdvice(coach.SportType(body.Sport), coach.SessionType(body.Type), body.DurationMin)

	s, err := h.store.CreateSession(c, trainingSession{
		UserID:       userID,
		Date:         DateOnly{date},
		Title:        body.Title,
		Sport:        body.Sport,
		DurationMin:  body.DurationMin,
		Type:         body.Type,
		Intensity:    body.Intensity,
		TimeOfDay:    body.TimeOfDay,
		Notes:        body.Notes,
		AdviceBefore: &advice.Before,
		AdviceDuring: &advice.During,
		AdviceAfter:  &advice.After,
	})
	if err != nil {
		storeError(c, "sessions", err, "session not found", "failed to create session")
		return
	}
	s.fillAdvice()

	c.JSON(http.StatusCreated, s)
}

// updateSession partially updates a session. The stored advice is left as
// it was at creation even when sport, type or duration change.
// PUT /api/sessions/:id.
func (h *Handler) updateSession(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body updateSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	var date, sport, sessionType string
	if body.Date != nil {
		date = *body.Date
		if date == "" {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}
	if body.Sport != nil {
		sport = *body.Sport
		if sport == "" {
			apiError(c, http.StatusBadRequest, "sport must not be empty")
			return
		}
	}
	if body.Type != nil {
		sessionType = *body.Type
		if sessionType == "" {
			apiError(c, http.StatusBadRequest, "type must not be empty")
			return
		}
	}
	if msg := validateSessionFields(date, sport, sessionType); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}
	if body.Title != nil && strings.TrimSpace(*body.Title) == "" {
		apiError(c, http.StatusBadRequest, "title must not be empty")
		return
	}
	if body.DurationMin != nil && *body.DurationMin <= 0 {
		apiError(c, http.StatusBadRequest, "duration_min must be greater than 0")
		return
	}
	if body.Intensity != nil && !intensityValid(*body.Intensity) {
		apiError(c, http.StatusBadRequest, "intensity must be between 0 and 3")
		return
	}

	s, err := h.store.UpdateSession(c, userID, id, body)
	if err != nil {
		storeError(c, "sessions", err, "session not found", "failed to update session")
		return
	}
	s.fillAdvice()

	c.JSON(http.StatusOK, s)
}

// deleteSession removes a session by ID.
// DELETE /api/sessions/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteSession(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteSession(c, userID, id); err != nil {
		storeError(c, "sessions", err, "session not found", "failed to delete session")
		return
	}

	c.Status(http.StatusNoContent)
}

// regenerateRuleAdvice recomputes the rule-engine advice from the session's
// current sport, type and duration, and stores it.
// POST /api/sessions/:id/rule-advice.
func (h *Handler) regenerateRuleAdvice(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	s, err := h.store.GetSession(c, userID, id)
	if err != nil {
		storeError(c, "sessions", err, "session not found", "failed to fetch session")
		return
	}
	advice := coach.GenerateAdvice(coach.SportType(s.Sport), coach.SessionType(s.Type), s.DurationMin)

	s, err = h.store.SetSessionAdvice(c, userID, id, advice)
	if err != nil {
		storeError(c, "sessions", err, "session not found", "failed to save advice")
		return
	}
	s.fillAdvice()

	c.JSON(http.StatusOK, s)
}
