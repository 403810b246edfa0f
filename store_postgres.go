package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
// A missing row is reported as errNotFound.
func queryOne[T any](ctx context.Context, db querier, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := db.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return result, errNotFound
	}
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
// The result is never nil so handlers encode an empty JSON array.
func queryMany[T any](ctx context.Context, db querier, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := db.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// postgresStore is the pgx-backed Store.
type postgresStore struct {
	db *pgxpool.Pool
}

func newPostgresStore(db *pgxpool.Pool) *postgresStore {
	return &postgresStore{db: db}
}

// dateRangeClause appends optional date bounds to a WHERE clause.
func dateRangeClause(where []string, args pgx.NamedArgs, start, end string) []string {
	if start != "" {
		where = append(where, "date >= @start")
		args["start"] = start
	}
	if end != "" {
		where = append(where, "date <= @end")
		args["end"] = end
	}
	return where
}

// execOwned runs a DELETE/UPDATE and maps zero affected rows to errNotFound.
func (s *postgresStore) execOwned(ctx context.Context, sql string, args pgx.NamedArgs) error {
	result, err := s.db.Exec(ctx, sql, args)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

/* ─── Users & profiles ───────────────────────────────────────────────── */

func (s *postgresStore) UserByUsername(ctx context.Context, username string) (user, error) {
	return queryOne[user](ctx, s.db,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": username})
}

func (s *postgresStore) UserIDByToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := s.db.QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errNotFound
	}
	return userID, err
}

func (s *postgresStore) GetProfile(ctx context.Context, userID int) (userProfile, error) {
	return queryOne[userProfile](ctx, s.db,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
}

// UpsertProfile writes the whole profile; the UNIQUE user_id makes a second
// PUT update in place.
func (s *postgresStore) UpsertProfile(ctx context.Context, p userProfile) (userProfile, error) {
	var dob *string
	if p.DateOfBirth != nil {
		d := p.DateOfBirth.String()
		dob = &d
	}
	return queryOne[userProfile](ctx, s.db,
		`INSERT INTO user_profiles (user_id, first_name, date_of_birth, gender, weight_kg, height_cm,
			goals, sports, training_frequency, vma, ftp, protein_goal_g, carbs_goal_g, fat_goal_g)
		 VALUES (@userID, @firstName, @dateOfBirth, @gender, @weightKg, @heightCm,
			@goals, @sports, @trainingFrequency, @vma, @ftp, @proteinGoal, @carbsGoal, @fatGoal)
		 ON CONFLICT (user_id) DO UPDATE SET
			first_name         = EXCLUDED.first_name,
			date_of_birth      = EXCLUDED.date_of_birth,
			gender             = EXCLUDED.gender,
			weight_kg          = EXCLUDED.weight_kg,
			height_cm          = EXCLUDED.height_cm,
			goals              = EXCLUDED.goals,
			sports             = EXCLUDED.sports,
			training_frequency = EXCLUDED.training_frequency,
			vma                = EXCLUDED.vma,
			ftp                = EXCLUDED.ftp,
			protein_goal_g     = EXCLUDED.protein_goal_g,
			carbs_goal_g       = EXCLUDED.carbs_goal_g,
			fat_goal_g         = EXCLUDED.fat_goal_g
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":            p.UserID,
			"firstName":         p.FirstName,
			"dateOfBirth":       dob,
			"gender":            p.Gender,
			"weightKg":          p.WeightKg,
			"heightCm":          p.HeightCm,
			"goals":             p.Goals,
			"sports":            p.Sports,
			"trainingFrequency": p.TrainingFrequency,
			"vma":               p.VMA,
			"ftp":               p.FTP,
			"proteinGoal":       p.ProteinGoalG,
			"carbsGoal":         p.CarbsGoalG,
			"fatGoal":           p.FatGoalG,
		})
}

/* ─── Training sessions ──────────────────────────────────────────────── */

func (s *postgresStore) ListSessions(ctx context.Context, userID int, start, end string) ([]trainingSession, error) {
	args := pgx.NamedArgs{"userID": userID}
	where := dateRangeClause([]string{"user_id = @userID"}, args, start, end)
	return queryMany[trainingSession](ctx, s.db,
		"SELECT * FROM training_sessions WHERE "+strings.Join(where, " AND ")+" ORDER BY date DESC, id DESC",
		args)
}

func (s *postgresStore) GetSession(ctx context.Context, userID, id int) (trainingSession, error) {
	return queryOne[trainingSession](ctx, s.db,
		"SELECT * FROM training_sessions WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
}

func (s *postgresStore) CreateSession(ctx context.Context, ts trainingSession) (trainingSession, error) {
	return queryOne[trainingSession](ctx, s.db,
		`INSERT INTO training_sessions (user_id, date, title, sport, duration_min, type, intensity,
			time_of_day, notes, advice_before, advice_during, advice_after)
		 VALUES (@userID, @date, @title, @sport, @durationMin, @type, @intensity,
			@timeOfDay, @notes, @adviceBefore, @adviceDuring, @adviceAfter)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":       ts.UserID,
			"date":         ts.Date.String(),
			"title":        ts.Title,
			"sport":        ts.Sport,
			"durationMin":  ts.DurationMin,
			"type":         ts.Type,
			"intensity":    ts.Intensity,
			"timeOfDay":    ts.TimeOfDay,
			"notes":        ts.Notes,
			"adviceBefore": ts.AdviceBefore,
			"adviceDuring": ts.AdviceDuring,
			"adviceAfter":  ts.AdviceAfter,
		})
}

// UpdateSession uses COALESCE so omitted fields keep their current values.
// The advice columns are not part of the statement.
func (s *postgresStore) UpdateSession(ctx context.Context, userID, id int, p updateSessionRequest) (trainingSession, error) {
	return queryOne[trainingSession](ctx, s.db,
		`UPDATE training_sessions SET
			date         = COALESCE(@date, date),
			title        = COALESCE(@title, title),
			sport        = COALESCE(@sport, sport),
			duration_min = COALESCE(@durationMin, duration_min),
			type         = COALESCE(@type, type),
			intensity    = COALESCE(@intensity, intensity),
			time_of_day  = COALESCE(@timeOfDay, time_of_day),
			notes        = COALESCE(@notes, notes)
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"date": p.Date, "title": p.Title, "sport": p.Sport, "durationMin": p.DurationMin,
			"type": p.Type, "intensity": p.Intensity, "timeOfDay": p.TimeOfDay, "notes": p.Notes,
		})
}

func (s *postgresStore) SetSessionAdvice(ctx context.Context, userID, id int, a coach.SessionAdvice) (trainingSession, error) {
	return queryOne[trainingSession](ctx, s.db,
		`UPDATE training_sessions SET
			advice_before = @before,
			advice_during = @during,
			advice_after  = @after
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID, "before": a.Before, "during": a.During, "after": a.After})
}

func (s *postgresStore) DeleteSession(ctx context.Context, userID, id int) error {
	return s.execOwned(ctx,
		"DELETE FROM training_sessions WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
}

/* ─── Competitions ───────────────────────────────────────────────────── */

func (s *postgresStore) ListCompetitions(ctx context.Context, userID int, start, end string) ([]competition, error) {
	args := pgx.NamedArgs{"userID": userID}
	where := dateRangeClause([]string{"user_id = @userID"}, args, start, end)
	return queryMany[competition](ctx, s.db,
		"SELECT * FROM competitions WHERE "+strings.Join(where, " AND ")+" ORDER BY date DESC, id DESC",
		args)
}

func (s *postgresStore) GetCompetition(ctx context.Context, userID, id int) (competition, error) {
	return queryOne[competition](ctx, s.db,
		"SELECT * FROM competitions WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
}

func (s *postgresStore) CreateCompetition(ctx context.Context, comp competition) (competition, error) {
	return queryOne[competition](ctx, s.db,
		`INSERT INTO competitions (user_id, date, name, sport, distance_km, target_duration_min,
			intensity, location, notes)
		 VALUES (@userID, @date, @name, @sport, @distanceKm, @targetDurationMin,
			@intensity, @location, @notes)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":            comp.UserID,
			"date":              comp.Date.String(),
			"name":              comp.Name,
			"sport":             comp.Sport,
			"distanceKm":        comp.DistanceKm,
			"targetDurationMin": comp.TargetDurationMin,
			"intensity":         comp.Intensity,
			"location":          comp.Location,
			"notes":             comp.Notes,
		})
}

func (s *postgresStore) UpdateCompetition(ctx context.Context, userID, id int, p updateCompetitionRequest) (competition, error) {
	return queryOne[competition](ctx, s.db,
		`UPDATE competitions SET
			date                = COALESCE(@date, date),
			name                = COALESCE(@name, name),
			sport               = COALESCE(@sport, sport),
			distance_km         = COALESCE(@distanceKm, distance_km),
			target_duration_min = COALESCE(@targetDurationMin, target_duration_min),
			intensity           = COALESCE(@intensity, intensity),
			location            = COALESCE(@location, location),
			notes               = COALESCE(@notes, notes)
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"date": p.Date, "name": p.Name, "sport": p.Sport, "distanceKm": p.DistanceKm,
			"targetDurationMin": p.TargetDurationMin, "intensity": p.Intensity,
			"location": p.Location, "notes": p.Notes,
		})
}

func (s *postgresStore) DeleteCompetition(ctx context.Context, userID, id int) error {
	return s.execOwned(ctx,
		"DELETE FROM competitions WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
}

/* ─── Consumed foods ─────────────────────────────────────────────────── */

func (s *postgresStore) ListConsumedFoods(ctx context.Context, userID int, day string) ([]coach.ConsumedFood, error) {
	rows, err := queryMany[consumedFoodRow](ctx, s.db,
		`SELECT * FROM consumed_foods
		 WHERE user_id = @userID AND day = @day
		 ORDER BY seq`,
		pgx.NamedArgs{"userID": userID, "day": day})
	if err != nil {
		return nil, err
	}
	foods := make([]coach.ConsumedFood, len(rows))
	for i, r := range rows {
		foods[i] = r.food()
	}
	return foods, nil
}

func (s *postgresStore) AddConsumedFood(ctx context.Context, userID int, day string, f coach.ConsumedFood) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO consumed_foods (id, user_id, day, ingredient_id, quantity_g, consumed_at)
		 VALUES (@id, @userID, @day, @ingredientID, @quantity, @consumedAt)`,
		pgx.NamedArgs{
			"id":           f.ID,
			"userID":       userID,
			"day":          day,
			"ingredientID": f.IngredientID,
			"quantity":     f.Quantity,
			"consumedAt":   f.Timestamp,
		})
	return err
}

func (s *postgresStore) DeleteConsumedFood(ctx context.Context, userID int, entryID string) error {
	return s.execOwned(ctx,
		"DELETE FROM consumed_foods WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": entryID, "userID": userID})
}

/* ─── AI advice ──────────────────────────────────────────────────────── */

// ReplaceSessionAIAdvice runs the delete and insert in one transaction so a
// session never ends up with two rows.
func (s *postgresStore) ReplaceSessionAIAdvice(ctx context.Context, a sessionAIAdvice) (sessionAIAdvice, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return sessionAIAdvice{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM session_ai_advice WHERE session_id = $1", a.SessionID); err != nil {
		return sessionAIAdvice{}, fmt.Errorf("delete old advice: %w", err)
	}
	saved, err := queryOne[sessionAIAdvice](ctx, tx,
		`INSERT INTO session_ai_advice (session_id, before_text, during_text, after_text)
		 VALUES (@sessionID, @before, @during, @after)
		 RETURNING *`,
		pgx.NamedArgs{"sessionID": a.SessionID, "before": a.Before, "during": a.During, "after": a.After})
	if err != nil {
		return sessionAIAdvice{}, fmt.Errorf("insert advice: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return sessionAIAdvice{}, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

func (s *postgresStore) GetSessionAIAdvice(ctx context.Context, sessionID int) (sessionAIAdvice, error) {
	return queryOne[sessionAIAdvice](ctx, s.db,
		"SELECT * FROM session_ai_advice WHERE session_id = @sessionID",
		pgx.NamedArgs{"sessionID": sessionID})
}

func (s *postgresStore) AdviceCreatedBetween(ctx context.Context, userID int, kind string, from, to time.Time) ([]aiAdvice, error) {
	return queryMany[aiAdvice](ctx, s.db,
		`SELECT * FROM ai_advice
		 WHERE user_id = @userID AND kind = @kind
		   AND created_at >= @from AND created_at < @to
		 ORDER BY created_at DESC`,
		pgx.NamedArgs{"userID": userID, "kind": kind, "from": from, "to": to})
}

func (s *postgresStore) InsertAdvice(ctx context.Context, a aiAdvice) (aiAdvice, error) {
	return insertAdvice(ctx, s.db, a)
}

func insertAdvice(ctx context.Context, db querier, a aiAdvice) (aiAdvice, error) {
	return queryOne[aiAdvice](ctx, db,
		`INSERT INTO ai_advice (user_id, kind, content, created_at)
		 VALUES (@userID, @kind, @content, @createdAt)
		 RETURNING *`,
		pgx.NamedArgs{"userID": a.UserID, "kind": a.Kind, "content": a.Content, "createdAt": a.CreatedAt})
}

// ReplaceAdvice swaps the old rows for a in one transaction, so a failed
// insert leaves the previous advice in place.
func (s *postgresStore) ReplaceAdvice(ctx context.Context, userID int, ids []int, a aiAdvice) (aiAdvice, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return aiAdvice{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM ai_advice WHERE user_id = @userID AND id = ANY(@ids)",
		pgx.NamedArgs{"userID": userID, "ids": ids}); err != nil {
		return aiAdvice{}, fmt.Errorf("delete old advice: %w", err)
	}
	saved, err := insertAdvice(ctx, tx, a)
	if err != nil {
		return aiAdvice{}, fmt.Errorf("insert advice: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return aiAdvice{}, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

func (s *postgresStore) LatestAdvice(ctx context.Context, userID int, kind string) (aiAdvice, error) {
	return queryOne[aiAdvice](ctx, s.db,
		`SELECT * FROM ai_advice
		 WHERE user_id = @userID AND kind = @kind
		 ORDER BY created_at DESC
		 LIMIT 1`,
		pgx.NamedArgs{"userID": userID, "kind": kind})
}
