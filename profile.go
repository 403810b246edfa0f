package main

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/gin-gonic/gin"
)

var validGenders = map[string]bool{"male": true, "female": true}

// ageOn returns whole years between dob and today, or ok=false when the
// result is implausible (DOB in the future, or over 130 years ago).
func ageOn(dob, today time.Time) (int, bool) {
	age := today.Year() - dob.Year()
	if today.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, false
	}
	return age, true
}

// populateComputedProfile fills the fields derived from stored columns.
func populateComputedProfile(p *userProfile, today time.Time) {
	p.NutritionGoals = coach.NutritionGoals{Protein: p.ProteinGoalG, Carbs: p.CarbsGoalG, Fat: p.FatGoalG}
	p.ProfileTag = coach.ProfileTag(p.TrainingFrequency)
	p.Age = nil
	if p.DateOfBirth != nil {
		if age, ok := ageOn(p.DateOfBirth.Time, today); ok {
			p.Age = &age
		}
	}
	if p.Goals == nil {
		p.Goals = []string{}
	}
	if p.Sports == nil {
		p.Sports = []string{}
	}
}

// loadProfile returns the user's profile, or an empty one when none was
// saved yet; advice and nutrition still work for a fresh account.
func (h *Handler) loadProfile(c *gin.Context, userID int) (userProfile, error) {
	p, err := h.store.GetProfile(c, userID)
	if errors.Is(err, errNotFound) {
		p = userProfile{UserID: userID}
	} else if err != nil {
		return userProfile{}, err
	}
	populateComputedProfile(&p, h.clock())
	return p, nil
}

// getProfile returns the authenticated user's profile.
// GET /api/profile. 404 until the profile has been set up.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := h.store.GetProfile(c, userID)
	if err != nil {
		storeError(c, "profile", err, "profile not found", "failed to fetch profile")
		return
	}
	populateComputedProfile(&p, h.clock())

	c.JSON(http.StatusOK, p)
}

// putProfile creates or replaces the profile.
// PUT /api/profile. Nutrition goals come from the body when given, otherwise
// they are derived from weight_kg.
func (h *Handler) putProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body upsertProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(body.FirstName) == "" {
		apiError(c, http.StatusBadRequest, "first_name is required")
		return
	}
	if body.Gender != nil && !validGenders[*body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female")
		return
	}
	if body.WeightKg != nil && (*body.WeightKg <= 0 || *body.WeightKg > 500) {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 500")
		return
	}
	if body.HeightCm != nil && (*body.HeightCm <= 0 || *body.HeightCm > 300) {
		apiError(c, http.StatusBadRequest, "height_cm must be between 0 and 300")
		return
	}
	for _, s := range body.Sports {
		if !coach.SportType(s).Valid() {
			apiError(c, http.StatusBadRequest, "unknown sport: "+s)
			return
		}
	}
	if g := body.NutritionGoals; g != nil && (g.Protein < 0 || g.Carbs < 0 || g.Fat < 0) {
		apiError(c, http.StatusBadRequest, "nutrition_goals must not be negative")
		return
	}

	p := userProfile{
		UserID:            userID,
		FirstName:         strings.TrimSpace(body.FirstName),
		Gender:            body.Gender,
		WeightKg:          body.WeightKg,
		HeightCm:          body.HeightCm,
		Goals:             body.Goals,
		Sports:            body.Sports,
		TrainingFrequency: body.TrainingFrequency,
		VMA:               body.VMA,
		FTP:               body.FTP,
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse(coach.DayLayout, *body.DateOfBirth)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD")
			return
		}
		p.DateOfBirth = &DateOnly{dob}
	}

	goals := coach.NutritionGoals{}
	if body.NutritionGoals != nil {
		goals = *body.NutritionGoals
	} else if body.WeightKg != nil {
		goals = coach.GoalsFromWeight(*body.WeightKg)
	}
	p.ProteinGoalG, p.CarbsGoalG, p.FatGoalG = goals.Protein, goals.Carbs, goals.Fat
	if p.Goals == nil {
		p.Goals = []string{}
	}
	if p.Sports == nil {
		p.Sports = []string{}
	}

	saved, err := h.store.UpsertProfile(c, p)
	if err != nil {
		log.Printf("[profile] upsert: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}
	populateComputedProfile(&saved, h.clock())

	c.JSON(http.StatusOK, saved)
}
