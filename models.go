package main

import (
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(coach.DayLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

// String returns the YYYY-MM-DD form used as a day key.
func (d DateOnly) String() string { return d.Time.Format(coach.DayLayout) }

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id"         db:"id"`
	Username  string     `json:"username"   db:"username"`
	Email     string     `json:"email"      db:"email"`
	AuthToken string     `json:"-"          db:"auth_token"`
	Password  string     `json:"-"          db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles. Nutrition goals are stored flat and
// exposed as a nested object; age and profile tag are derived on read.
type userProfile struct {
	UserID            int       `json:"user_id"            db:"user_id"`
	FirstName         string    `json:"first_name"         db:"first_name"`
	DateOfBirth       *DateOnly `json:"date_of_birth"      db:"date_of_birth"`
	Gender            *string   `json:"gender"             db:"gender"`
	WeightKg          *float64  `json:"weight_kg"          db:"weight_kg"`
	HeightCm          *float64  `json:"height_cm"          db:"height_cm"`
	Goals             []string  `json:"goals"              db:"goals"`
	Sports            []string  `json:"sports"             db:"sports"`
	TrainingFrequency string    `json:"training_frequency" db:"training_frequency"`
	VMA               *float64  `json:"vma"                db:"vma"`
	FTP               *float64  `json:"ftp"                db:"ftp"`
	ProteinGoalG      int       `json:"-"                  db:"protein_goal_g"`
	CarbsGoalG        int       `json:"-"                  db:"carbs_goal_g"`
	FatGoalG          int       `json:"-"                  db:"fat_goal_g"`

	// Computed fields, not stored.
	NutritionGoals coach.NutritionGoals `json:"nutrition_goals" db:"-"`
	Age            *int                 `json:"age,omitempty"   db:"-"`
	ProfileTag     string               `json:"profile_tag"     db:"-"`
}

// trainingSession maps to training_sessions. The rule-engine advice is
// stored in three flat columns and exposed as one object.
type trainingSession struct {
	ID           int        `json:"id"           db:"id"`
	UserID       int        `json:"user_id"      db:"user_id"`
	Date         DateOnly   `json:"date"         db:"date"`
	Title        string     `json:"title"        db:"title"`
	Sport        string     `json:"sport"        db:"sport"`
	DurationMin  int        `json:"duration_min" db:"duration_min"`
	Type         string     `json:"type"         db:"type"`
	Intensity    int        `json:"intensity"    db:"intensity"`
	TimeOfDay    *string    `json:"time_of_day"  db:"time_of_day"`
	Notes        *string    `json:"notes"        db:"notes"`
	AdviceBefore *string    `json:"-"            db:"advice_before"`
	AdviceDuring *string    `json:"-"            db:"advice_during"`
	AdviceAfter  *string    `json:"-"            db:"advice_after"`
	CreatedAt    *time.Time `json:"created_at"   db:"created_at"`

	Advice *coach.SessionAdvice `json:"advice" db:"-"`
}

// competition maps to competitions. Same lifecycle as a session, no advice.
type competition struct {
	ID                int        `json:"id"                  db:"id"`
	UserID            int        `json:"user_id"             db:"user_id"`
	Date              DateOnly   `json:"date"                db:"date"`
	Name              string     `json:"name"                db:"name"`
	Sport             string     `json:"sport"               db:"sport"`
	DistanceKm        float64    `json:"distance_km"         db:"distance_km"`
	TargetDurationMin *int       `json:"target_duration_min" db:"target_duration_min"`
	Intensity         *int       `json:"intensity"           db:"intensity"`
	Location          *string    `json:"location"            db:"location"`
	Notes             *string    `json:"notes"               db:"notes"`
	CreatedAt         *time.Time `json:"created_at"          db:"created_at"`
}

// consumedFoodRow maps to consumed_foods; the API speaks coach.ConsumedFood.
type consumedFoodRow struct {
	ID           string    `db:"id"`
	UserID       int       `db:"user_id"`
	Day          DateOnly  `db:"day"`
	IngredientID string    `db:"ingredient_id"`
	QuantityG    float64   `db:"quantity_g"`
	ConsumedAt   time.Time `db:"consumed_at"`
	Seq          int64     `db:"seq"`
}

func (r consumedFoodRow) food() coach.ConsumedFood {
	return coach.ConsumedFood{ID: r.ID, IngredientID: r.IngredientID, Quantity: r.QuantityG, Timestamp: r.ConsumedAt}
}

// Advice kinds stored in ai_advice.kind.
const (
	adviceDaily  = "daily"
	adviceWeekly = "weekly"
)

// aiAdvice maps to ai_advice: free-text daily or weekly advice.
type aiAdvice struct {
	ID        int       `json:"id"         db:"id"`
	UserID    int       `json:"user_id"    db:"user_id"`
	Kind      string    `json:"kind"       db:"kind"`
	Content   string    `json:"content"    db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// sessionAIAdvice maps to session_ai_advice, at most one row per session.
type sessionAIAdvice struct {
	SessionID int       `json:"session_id" db:"session_id"`
	Before    string    `json:"before"     db:"before_text"`
	During    string    `json:"during"     db:"during_text"`
	After     string    `json:"after"      db:"after_text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request / response types ───────────────────────────────────────── */

// upsertProfileRequest is the request body for PUT /api/profile. When
// nutrition_goals is omitted the goals are derived from weight_kg.
type upsertProfileRequest struct {
	FirstName         string                `json:"first_name"`
	DateOfBirth       *string               `json:"date_of_birth"` // YYYY-MM-DD
	Gender            *string               `json:"gender"`
	WeightKg          *float64              `json:"weight_kg"`
	HeightCm          *float64              `json:"height_cm"`
	Goals             []string              `json:"goals"`
	Sports            []string              `json:"sports"`
	TrainingFrequency string                `json:"training_frequency"`
	VMA               *float64              `json:"vma"`
	FTP               *float64              `json:"ftp"`
	NutritionGoals    *coach.NutritionGoals `json:"nutrition_goals"`
}

// createSessionRequest is the request body for POST /api/sessions.
type createSessionRequest struct {
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Sport       string  `json:"sport"`
	DurationMin int     `json:"duration_min"`
	Type        string  `json:"type"`
	Intensity   int     `json:"intensity"`
	TimeOfDay   *string `json:"time_of_day"`
	Notes       *string `json:"notes"`
}

// updateSessionRequest is the request body for PUT /api/sessions/:id.
// Only non-nil fields are written; advice is never touched.
type updateSessionRequest struct {
	Date        *string `json:"date"`
	Title       *string `json:"title"`
	Sport       *string `json:"sport"`
	DurationMin *int    `json:"duration_min"`
	Type        *string `json:"type"`
	Intensity   *int    `json:"intensity"`
	TimeOfDay   *string `json:"time_of_day"`
	Notes       *string `json:"notes"`
}

// createCompetitionRequest is the request body for POST /api/competitions.
type createCompetitionRequest struct {
	Date              string  `json:"date"`
	Name              string  `json:"name"`
	Sport             string  `json:"sport"`
	DistanceKm        float64 `json:"distance_km"`
	TargetDurationMin *int    `json:"target_duration_min"`
	Intensity         *int    `json:"intensity"`
	Location          *string `json:"location"`
	Notes             *string `json:"notes"`
}

// updateCompetitionRequest is the request body for PUT /api/competitions/:id.
type updateCompetitionRequest struct {
	Date              *string  `json:"date"`
	Name              *string  `json:"name"`
	Sport             *string  `json:"sport"`
	DistanceKm        *float64 `json:"distance_km"`
	TargetDurationMin *int     `json:"target_duration_min"`
	Intensity         *int     `json:"intensity"`
	Location          *string  `json:"location"`
	Notes             *string  `json:"notes"`
}

// addFoodRequest is the request body for POST /api/nutrition/today/foods.
type addFoodRequest struct {
	IngredientID string   `json:"ingredient_id"`
	Quantity     *float64 `json:"quantity"`
}

// todayNutrition is the response shape for the nutrition endpoints.
type todayNutrition struct {
	coach.DailyNutrition
	Goals     coach.NutritionGoals `json:"goals"`
	Remaining coach.Macros         `json:"remaining"`
	Percent   coach.Macros         `json:"percent"`
}

// calendarDay is one day of GET /api/calendar/week.
type calendarDay struct {
	Date         string            `json:"date"`
	Sessions     []trainingSession `json:"sessions"`
	Competitions []competition     `json:"competitions"`
	TotalMinutes int               `json:"total_minutes"`
	IntenseCount int               `json:"intense_count"`
}

// calendarWeek is the response shape for GET /api/calendar/week.
type calendarWeek struct {
	WeekStart    string        `json:"week_start"`
	WeekEnd      string        `json:"week_end"`
	Days         []calendarDay `json:"days"`
	TotalMinutes int           `json:"total_minutes"`
	IntenseCount int           `json:"intense_count"`
}
