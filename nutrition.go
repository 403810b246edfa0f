package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/gin-gonic/gin"
)

// maxPortionGrams bounds a single add action.
const maxPortionGrams = 5000.0

// listIngredients returns the catalog, optionally filtered by category.
// GET /api/ingredients?category=poisson.
func (h *Handler) listIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ingredients": h.catalog.ByCategory(c.Query("category")),
		"categories":  h.catalog.Categories(),
	})
}

// loadToday builds today's snapshot from the stored entries. Totals are
// always recomputed from the list, never read back.
func (h *Handler) loadToday(c *gin.Context, userID int) (coach.DailyNutrition, error) {
	day := h.today()
	foods, err := h.store.ListConsumedFoods(c, userID, day)
	if err != nil {
		return coach.DailyNutrition{}, err
	}
	return coach.Snapshot(day, foods, h.catalog), nil
}

// respondToday writes d with the user's goals and progress.
func (h *Handler) respondToday(c *gin.Context, status int, userID int, d coach.DailyNutrition) {
	profile, err := h.loadProfile(c, userID)
	if err != nil {
		log.Printf("[nutrition] profile: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	goals := profile.NutritionGoals
	c.JSON(status, todayNutrition{
		DailyNutrition: d,
		Goals:          goals,
		Remaining:      coach.Remaining(goals, d.Totals),
		Percent:        coach.Percent(goals, d.Totals),
	})
}

// getTodayNutrition returns today's consumed foods and macro totals.
// GET /api/nutrition/today. A new calendar day starts empty.
func (h *Handler) getTodayNutrition(c *gin.Context) {
	userID := c.GetInt("user_id")

	d, err := h.loadToday(c, userID)
	if err != nil {
		log.Printf("[nutrition] list: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch nutrition")
		return
	}

	h.respondToday(c, http.StatusOK, userID, d)
}

// addFood records one "I ate this" action.
// POST /api/nutrition/today/foods. Body: { "ingredient_id": "p1", "quantity": 150 }.
// quantity defaults to 100 g.
func (h *Handler) addFood(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body addFoodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.IngredientID = strings.TrimSpace(body.IngredientID)
	if body.IngredientID == "" {
		apiError(c, http.StatusBadRequest, "ingredient_id is required")
		return
	}
	if _, ok := h.catalog.Lookup(body.IngredientID); !ok {
		apiError(c, http.StatusBadRequest, "unknown ingredient_id")
		return
	}
	qty := coach.DefaultPortionGrams
	if body.Quantity != nil {
		qty = *body.Quantity
		if qty <= 0 || qty > maxPortionGrams {
			apiError(c, http.StatusBadRequest, "quantity must be between 0 and 5000")
			return
		}
	}

	d, err := h.loadToday(c, userID)
	if err != nil {
		log.Printf("[nutrition] list: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch nutrition")
		return
	}
	next, added := d.Add(coach.ConsumedFood{IngredientID: body.IngredientID, Quantity: qty, Timestamp: h.clock()}, h.catalog)

	if err := h.store.AddConsumedFood(c, userID, next.Date, added); err != nil {
		log.Printf("[nutrition] add: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to add food")
		return
	}

	h.respondToday(c, http.StatusCreated, userID, next)
}

// removeFood removes one portion of an ingredient: the latest entry logged
// today for it, which undoes the matching add.
// DELETE /api/nutrition/today/foods/:ingredientId. 404 when none was logged.
func (h *Handler) removeFood(c *gin.Context) {
	userID := c.GetInt("user_id")
	ingredientID := c.Param("ingredientId")

	d, err := h.loadToday(c, userID)
	if err != nil {
		log.Printf("[nutrition] list: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch nutrition")
		return
	}
	next, removed, ok := d.Remove(ingredientID, h.catalog)
	if !ok {
		apiError(c, http.StatusNotFound, "ingredient not consumed today")
		return
	}

	h.deleteEntry(c, userID, removed.ID, next)
}

// removeFoodEntry removes one entry by its id.
// DELETE /api/nutrition/today/entries/:entryId.
func (h *Handler) removeFoodEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	d, err := h.loadToday(c, userID)
	if err != nil {
		log.Printf("[nutrition] list: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch nutrition")
		return
	}
	next, removed, ok := d.RemoveEntry(c.Param("entryId"), h.catalog)
	if !ok {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	h.deleteEntry(c, userID, removed.ID, next)
}

func (h *Handler) deleteEntry(c *gin.Context, userID int, entryID string, next coach.DailyNutrition) {
	if err := h.store.DeleteConsumedFood(c, userID, entryID); err != nil {
		storeError(c, "nutrition", err, "entry not found", "failed to remove food")
		return
	}
	h.respondToday(c, http.StatusOK, userID, next)
}
