package main

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
)

// memoryStore is an in-memory Store for development (no DB_URL) and tests.
type memoryStore struct {
	mu            sync.Mutex
	users         []user
	profiles      map[int]userProfile
	sessions      []trainingSession
	competitions  []competition
	foods         []consumedFoodRow
	sessionAdvice map[int]sessionAIAdvice
	advice        []aiAdvice

	userIDCounter        int
	sessionIDCounter     int
	competitionIDCounter int
	adviceIDCounter      int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		profiles:      make(map[int]userProfile),
		sessionAdvice: make(map[int]sessionAIAdvice),
	}
}

// Ensure interfaces are met.
var _ Store = (*memoryStore)(nil)
var _ Store = (*postgresStore)(nil)

// addUser registers a user; password must already be a bcrypt hash.
func (m *memoryStore) addUser(username, email, passwordHash, token string) user {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.userIDCounter++
	now := time.Now()
	u := user{ID: m.userIDCounter, Username: username, Email: email, AuthToken: token, Password: passwordHash, CreatedAt: &now}
	m.users = append(m.users, u)
	return u
}

func inRange(day DateOnly, start, end string) bool {
	d := day.String()
	return (start == "" || d >= start) && (end == "" || d <= end)
}

/* ─── Users & profiles ───────────────────────────────────────────────── */

func (m *memoryStore) UserByUsername(ctx context.Context, username string) (user, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user{}, errNotFound
}

func (m *memoryStore) UserIDByToken(ctx context.Context, token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if token != "" && u.AuthToken == token {
			return u.ID, nil
		}
	}
	return 0, errNotFound
}

func (m *memoryStore) GetProfile(ctx context.Context, userID int) (userProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return userProfile{}, errNotFound
	}
	return p, nil
}

func (m *memoryStore) UpsertProfile(ctx context.Context, p userProfile) (userProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Goals = slices.Clone(p.Goals)
	p.Sports = slices.Clone(p.Sports)
	m.profiles[p.UserID] = p
	return p, nil
}

/* ─── Training sessions ──────────────────────────────────────────────── */

func (m *memoryStore) ListSessions(ctx context.Context, userID int, start, end string) ([]trainingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []trainingSession{}
	for _, s := range m.sessions {
		if s.UserID == userID && inRange(s.Date, start, end) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memoryStore) sessionIndex(userID, id int) int {
	return slices.IndexFunc(m.sessions, func(s trainingSession) bool { return s.ID == id && s.UserID == userID })
}

func (m *memoryStore) GetSession(ctx context.Context, userID, id int) (trainingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.sessionIndex(userID, id)
	if idx < 0 {
		return trainingSession{}, errNotFound
	}
	return m.sessions[idx], nil
}

func (m *memoryStore) CreateSession(ctx context.Context, s trainingSession) (trainingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionIDCounter++
	now := time.Now()
	s.ID = m.sessionIDCounter
	s.CreatedAt = &now
	s.Advice = nil
	m.sessions = append(m.sessions, s)
	return s, nil
}

func (m *memoryStore) UpdateSession(ctx context.Context, userID, id int, p updateSessionRequest) (trainingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.sessionIndex(userID, id)
	if idx < 0 {
		return trainingSession{}, errNotFound
	}
	s := m.sessions[idx]
	if p.Date != nil {
		d, err := time.Parse(coach.DayLayout, *p.Date)
		if err != nil {
			return trainingSession{}, err
		}
		s.Date = DateOnly{d}
	}
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Sport != nil {
		s.Sport = *p.Sport
	}
	if p.DurationMin != nil {
		s.DurationMin = *p.DurationMin
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Intensity != nil {
		s.Intensity = *p.Intensity
	}
	if p.TimeOfDay != nil {
		s.TimeOfDay = p.TimeOfDay
	}
	if p.Notes != nil {
		s.Notes = p.Notes
	}
	m.sessions[idx] = s
	return s, nil
}

func (m *memoryStore) SetSessionAdvice(ctx context.Context, userID, id int, a coach.SessionAdvice) (trainingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.sessionIndex(userID, id)
	if idx < 0 {
		return trainingSession{}, errNotFound
	}
	s := m.sessions[idx]
	s.AdviceBefore, s.AdviceDuring, s.AdviceAfter = &a.Before, &a.During, &a.After
	m.sessions[idx] = s
	return s, nil
}

func (m *memoryStore) DeleteSession(ctx context.Context, userID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.sessionIndex(userID, id)
	if idx < 0 {
		return errNotFound
	}
	m.sessions = slices.Delete(m.sessions, idx, idx+1)
	delete(m.sessionAdvice, id)
	return nil
}

/* ─── Competitions ───────────────────────────────────────────────────── */

func (m *memoryStore) ListCompetitions(ctx context.Context, userID int, start, end string) ([]competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []competition{}
	for _, c := range m.competitions {
		if c.UserID == userID && inRange(c.Date, start, end) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memoryStore) competitionIndex(userID, id int) int {
	return slices.IndexFunc(m.competitions, func(c competition) bool { return c.ID == id && c.UserID == userID })
}

func (m *memoryStore) GetCompetition(ctx context.Context, userID, id int) (competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.competitionIndex(userID, id)
	if idx < 0 {
		return competition{}, errNotFound
	}
	return m.competitions[idx], nil
}

func (m *memoryStore) CreateCompetition(ctx context.Context, c competition) (competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.competitionIDCounter++
	now := time.Now()
	c.ID = m.competitionIDCounter
	c.CreatedAt = &now
	m.competitions = append(m.competitions, c)
	return c, nil
}

func (m *memoryStore) UpdateCompetition(ctx context.Context, userID, id int, p updateCompetitionRequest) (competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.competitionIndex(userID, id)
	if idx < 0 {
		return competition{}, errNotFound
	}
	c := m.competitions[idx]
	if p.Date != nil {
		d, err := time.Parse(coach.DayLayout, *p.Date)
		if err != nil {
			return competition{}, err
		}
		c.Date = DateOnly{d}
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Sport != nil {
		c.Sport = *p.Sport
	}
	if p.DistanceKm != nil {
		c.DistanceKm = *p.DistanceKm
	}
	if p.TargetDurationMin != nil {
		c.TargetDurationMin = p.TargetDurationMin
	}
	if p.Intensity != nil {
		c.Intensity = p.Intensity
	}
	if p.Location != nil {
		c.Location = p.Location
	}
	if p.Notes != nil {
		c.Notes = p.Notes
	}
	m.competitions[idx] = c
	return c, nil
}

func (m *memoryStore) DeleteCompetition(ctx context.Context, userID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.competitionIndex(userID, id)
	if idx < 0 {
		return errNotFound
	}
	m.competitions = slices.Delete(m.competitions, idx, idx+1)
	return nil
}

/* ─── Consumed foods ─────────────────────────────────────────────────── */

// ListConsumedFoods keeps insertion order, which is the order entries were added.
func (m *memoryStore) ListConsumedFoods(ctx context.Context, userID int, day string) ([]coach.ConsumedFood, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []coach.ConsumedFood{}
	for _, r := range m.foods {
		if r.UserID == userID && r.Day.String() == day {
			out = append(out, r.food())
		}
	}
	return out, nil
}

func (m *memoryStore) AddConsumedFood(ctx context.Context, userID int, day string, f coach.ConsumedFood) error {
	d, err := time.Parse(coach.DayLayout, day)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.foods = append(m.foods, consumedFoodRow{
		ID:           f.ID,
		UserID:       userID,
		Day:          DateOnly{d},
		IngredientID: f.IngredientID,
		QuantityG:    f.Quantity,
		ConsumedAt:   f.Timestamp,
	})
	return nil
}

func (m *memoryStore) DeleteConsumedFood(ctx context.Context, userID int, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.foods, func(r consumedFoodRow) bool { return r.ID == entryID && r.UserID == userID })
	if idx < 0 {
		return errNotFound
	}
	m.foods = slices.Delete(m.foods, idx, idx+1)
	return nil
}

/* ─── AI advice ──────────────────────────────────────────────────────── */

func (m *memoryStore) ReplaceSessionAIAdvice(ctx context.Context, a sessionAIAdvice) (sessionAIAdvice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.sessionAdvice[a.SessionID] = a
	return a, nil
}

func (m *memoryStore) GetSessionAIAdvice(ctx context.Context, sessionID int) (sessionAIAdvice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.sessionAdvice[sessionID]
	if !ok {
		return sessionAIAdvice{}, errNotFound
	}
	return a, nil
}

func (m *memoryStore) AdviceCreatedBetween(ctx context.Context, userID int, kind string, from, to time.Time) ([]aiAdvice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []aiAdvice{}
	for _, a := range m.advice {
		if a.UserID == userID && a.Kind == kind && !a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryStore) InsertAdvice(ctx context.Context, a aiAdvice) (aiAdvice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertAdvice(a), nil
}

func (m *memoryStore) insertAdvice(a aiAdvice) aiAdvice {
	m.adviceIDCounter++
	a.ID = m.adviceIDCounter
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.advice = append(m.advice, a)
	return a
}

func (m *memoryStore) ReplaceAdvice(ctx context.Context, userID int, ids []int, a aiAdvice) (aiAdvice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advice = slices.DeleteFunc(m.advice, func(old aiAdvice) bool {
		return old.UserID == userID && slices.Contains(ids, old.ID)
	})
	return m.insertAdvice(a), nil
}

func (m *memoryStore) LatestAdvice(ctx context.Context, userID int, kind string) (aiAdvice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *aiAdvice
	for i := range m.advice {
		a := &m.advice[i]
		if a.UserID != userID || a.Kind != kind {
			continue
		}
		if latest == nil || !a.CreatedAt.Before(latest.CreatedAt) {
			latest = a
		}
	}
	if latest == nil {
		return aiAdvice{}, errNotFound
	}
	return *latest, nil
}
