package main

import (
	"context"
	"errors"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
)

// errNotFound is returned by Store methods when the row does not exist or
// is not owned by the caller.
var errNotFound = errors.New("not found")

// Store is everything the handlers persist. Implementations: postgresStore
// (pgx) and memoryStore (dev and tests). Ownership is part of every lookup:
// a row belonging to another user is reported as errNotFound.
type Store interface {
	UserByUsername(ctx context.Context, username string) (user, error)
	UserIDByToken(ctx context.Context, token string) (int, error)

	GetProfile(ctx context.Context, userID int) (userProfile, error)
	UpsertProfile(ctx context.Context, p userProfile) (userProfile, error)

	// ListSessions returns sessions newest first. Empty start/end leave that
	// side of the date range open.
	ListSessions(ctx context.Context, userID int, start, end string) ([]trainingSession, error)
	GetSession(ctx context.Context, userID, id int) (trainingSession, error)
	CreateSession(ctx context.Context, s trainingSession) (trainingSession, error)
	UpdateSession(ctx context.Context, userID, id int, patch updateSessionRequest) (trainingSession, error)
	SetSessionAdvice(ctx context.Context, userID, id int, advice coach.SessionAdvice) (trainingSession, error)
	DeleteSession(ctx context.Context, userID, id int) error

	ListCompetitions(ctx context.Context, userID int, start, end string) ([]competition, error)
	GetCompetition(ctx context.Context, userID, id int) (competition, error)
	CreateCompetition(ctx context.Context, comp competition) (competition, error)
	UpdateCompetition(ctx context.Context, userID, id int, patch updateCompetitionRequest) (competition, error)
	DeleteCompetition(ctx context.Context, userID, id int) error

	// ListConsumedFoods returns one day's entries in the order they were added.
	ListConsumedFoods(ctx context.Context, userID int, day string) ([]coach.ConsumedFood, error)
	AddConsumedFood(ctx context.Context, userID int, day string, food coach.ConsumedFood) error
	DeleteConsumedFood(ctx context.Context, userID int, entryID string) error

	// ReplaceSessionAIAdvice deletes any advice stored for the session and
	// inserts a.
	ReplaceSessionAIAdvice(ctx context.Context, a sessionAIAdvice) (sessionAIAdvice, error)
	GetSessionAIAdvice(ctx context.Context, sessionID int) (sessionAIAdvice, error)

	// AdviceCreatedBetween returns the user's advice of one kind created in
	// [from, to).
	AdviceCreatedBetween(ctx context.Context, userID int, kind string, from, to time.Time) ([]aiAdvice, error)
	InsertAdvice(ctx context.Context, a aiAdvice) (aiAdvice, error)
	// ReplaceAdvice deletes the user's advice with the given ids and inserts
	// a, atomically.
	ReplaceAdvice(ctx context.Context, userID int, ids []int, a aiAdvice) (aiAdvice, error)
	LatestAdvice(ctx context.Context, userID int, kind string) (aiAdvice, error)
}
