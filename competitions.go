package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/gin-gonic/gin"
)

func validateCompetition(date, sport *string, distance *float64, targetMin, intensity *int) string {
	if date != nil && !validDay(*date) {
		return "invalid date, expected YYYY-MM-DD"
	}
	if sport != nil && !coach.SportType(*sport).Valid() {
		return "sport must be one of: course, velo, natation, trail, triathlon, autre"
	}
	if distance != nil && *distance < 0 {
		return "distance_km must not be negative"
	}
	if targetMin != nil && *targetMin <= 0 {
		return "target_duration_min must be greater than 0"
	}
	if intensity != nil && !intensityValid(*intensity) {
		return "intensity must be between 0 and 3"
	}
	return ""
}

// listCompetitions returns the user's competitions, newest first.
// GET /api/competitions?start=YYYY-MM-DD&end=YYYY-MM-DD (both optional).
func (h *Handler) listCompetitions(c *gin.Context) {
	userID := c.GetInt("user_id")
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	comps, err := h.store.ListCompetitions(c, userID, start, end)
	if err != nil {
		storeError(c, "competitions", err, "competitions not found", "failed to fetch competitions")
		return
	}

	c.JSON(http.StatusOK, comps)
}

// GET /api/competitions/:id.
func (h *Handler) getCompetition(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	comp, err := h.store.GetCompetition(c, userID, id)
	if err != nil {
		storeError(c, "competitions", err, "competition not found", "failed to fetch competition")
		return
	}

	c.JSON(http.StatusOK, comp)
}

// POST /api/competitions.
func (h *Handler) createCompetition(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createCompetitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Date == "" || body.Name == "" || body.Sport == "" {
		apiError(c, http.StatusBadRequest, "date, name and sport are required")
		return
	}
	if msg := validateCompetition(&body.Date, &body.Sport, &body.DistanceKm, body.TargetDurationMin, body.Intensity); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	date, _ := time.Parse(coach.DayLayout, body.Date)
	comp, err := h.store.CreateCompetition(c, competition{
		UserID:            userID,
		Date:              DateOnly{date},
		Name:              body.Name,
		Sport:             body.Sport,
		DistanceKm:        body.DistanceKm,
		TargetDurationMin: body.TargetDurationMin,
		Intensity:         body.Intensity,
		Location:          body.Location,
		Notes:             body.Notes,
	})
	if err != nil {
		storeError(c, "competitions", err, "competition not found", "failed to create competition")
		return
	}

	c.JSON(http.StatusCreated, comp)
}

// updateCompetition uses pointer fields so omitted values stay unchanged.
// PUT /api/competitions/:id.
func (h *Handler) updateCompetition(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body updateCompetitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		apiError(c, http.StatusBadRequest, "name must not be empty")
		return
	}
	if msg := validateCompetition(body.Date, body.Sport, body.DistanceKm, body.TargetDurationMin, body.Intensity); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	comp, err := h.store.UpdateCompetition(c, userID, id, body)
	if err != nil {
		storeError(c, "competitions", err, "competition not found", "failed to update competition")
		return
	}

	c.JSON(http.StatusOK, comp)
}

// DELETE /api/competitions/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteCompetition(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteCompetition(c, userID, id); err != nil {
		storeError(c, "competitions", err, "competition not found", "failed to delete competition")
		return
	}

	c.Status(http.StatusNoContent)
}
