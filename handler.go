package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (store, catalog, advice provider) for all
// route handlers.
type Handler struct {
	store   Store
	catalog coach.Catalog
	advisor adviceProvider
	loc     *time.Location
	now     func() time.Time // overridable for tests
}

func newHandler(store Store, catalog coach.Catalog, advisor adviceProvider, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{store: store, catalog: catalog, advisor: advisor, loc: loc, now: time.Now}
}

// clock returns the current time in the configured zone.
func (h *Handler) clock() time.Time {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	loc := h.loc
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// today returns the calendar day key for now.
func (h *Handler) today() string {
	return h.clock().Format(coach.DayLayout)
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// storeError maps errNotFound to 404 and everything else to a logged 500.
func storeError(c *gin.Context, scope string, err error, notFoundMsg, failMsg string) {
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, notFoundMsg)
		return
	}
	log.Printf("[%s] %v", scope, err)
	apiError(c, http.StatusInternalServerError, failMsg)
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// validDay reports whether s is a YYYY-MM-DD date.
func validDay(s string) bool {
	_, err := time.Parse(coach.DayLayout, s)
	return err == nil
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates the connection pool shared by all requests; pgxpool
// replaces connections the server has closed while idle.
func getDBPool(dbURL string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Simple protocol: SELECT * plans must survive cmd/migrate adding columns
	// while the API is running.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// health is the unauthenticated liveness check.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)
	router.GET("/api/health", h.health)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)

	api.GET("/sessions", h.listSessions)
	api.POST("/sessions", h.createSession)
	api.GET("/sessions/:id", h.getSession)
	api.PUT("/sessions/:id", h.updateSession)
	api.DELETE("/sessions/:id", h.deleteSession)
	api.POST("/sessions/:id/rule-advice", h.regenerateRuleAdvice)
	api.GET("/sessions/:id/ai-advice", h.getSessionAIAdvice)

	api.GET("/competitions", h.listCompetitions)
	api.POST("/competitions", h.createCompetition)
	api.GET("/competitions/:id", h.getCompetition)
	api.PUT("/competitions/:id", h.updateCompetition)
	api.DELETE("/competitions/:id", h.deleteCompetition)

	api.GET("/calendar/week", h.getCalendarWeek)

	api.GET("/ingredients", h.listIngredients)
	api.GET("/nutrition/today", h.getTodayNutrition)
	api.POST("/nutrition/today/foods", h.addFood)
	api.DELETE("/nutrition/today/foods/:ingredientId", h.removeFood)
	api.DELETE("/nutrition/today/entries/:entryId", h.removeFoodEntry)

	api.POST("/advice/session", h.generateSessionAIAdvice)
	api.POST("/advice/daily", h.generateDailyAdvice)
	api.GET("/advice/daily", h.getDailyAdvice)
	api.POST("/advice/weekly", h.generateWeeklyAdvice)
	api.GET("/advice/weekly", h.getWeeklyAdvice)
	api.GET("/advice/tip", h.getTip)
	api.GET("/advice/tips", h.listTips)
}
