package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/gin-gonic/gin"
)

/* ─── Prompts ────────────────────────────────────────────────────────── */

const adviceSystemPrompt = "Tu es un nutritionniste du sport expert qui coache des athlètes amateurs. Ton ton est cool, motivant et éducatif : explique le pourquoi de chaque conseil."

const sessionPromptTemplate = `Profil utilisateur : %s
Détails de la séance : %s

Rédige des conseils nutritionnels pour cette séance.
AVANT : adapte le conseil au temps restant avant l'effort (3-4h, 2h ou 1h) et pense à la ration d'attente.
PENDANT : si l'effort dépasse 1h, vise 50 g de glucides par heure ; hydratation d'environ 150 ml toutes les 15 minutes.
APRÈS : fenêtre métabolique entre 30 min et 2h, combo 25 g de protéines + 25 g de glucides.

Réponds uniquement avec un objet JSON de la forme :
{"conseil_avant": "...", "conseil_pendant": "...", "conseil_apres": "..."}`

const dailyPromptTemplate = `Génère le CONSEIL DU JOUR (stratégie 24h) pour %s.

Profil utilisateur : %s
Profil d'entraînement : %s
Séances du jour (%s) : %s
Séances d'hier à demain : %s

Commence par 1 à 2 phrases qui donnent le ton de la journée (grosse performance, récupération active ou charge).
Puis la structure alimentaire : petit-déjeuner, déjeuner, dîner, chacun avec son objectif.
S'il n'y a aucune séance, propose une journée de régénération méditerranéenne (micro-nutrition, hydratation de 1,5 à 2 L).
Jamais d'eau glacée ; pas de fibres ni de lactose le soir si une compétition intense est prévue le lendemain.
Termine par un conseil micro-nutrition.`

const weeklyPromptTemplate = `Génère la STRATÉGIE DE LA SEMAINE pour %s.

Profil utilisateur : %s
Profil d'entraînement : %s
Séances (%s à %s) : %s
Compétitions : %s
Alerte intensité : %d séances intenses détectées.

Commence par 4 à 5 phrases qui identifient le moment fort de la semaine et le mindset nutritionnel.
Semaine calme : 55%% de glucides complexes ; préparation intense ou compétition : passe à 70%% pour saturer le glycogène.
Si plus de 3 séances intenses, explique le risque d'inflammation (IL-6) et son effet sur l'absorption du fer.
S'il n'y a aucune séance, encourage une semaine de régénération méditerranéenne.
Termine par un calendrier jour par jour et un conseil de prévention.`

// generationFailed is stored when the provider's session advice is not
// valid JSON.
const generationFailed = "Erreur de génération."

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func displayName(p userProfile) string {
	if p.FirstName == "" {
		return "l'utilisateur"
	}
	return p.FirstName
}

func sessionPrompt(p userProfile, s trainingSession) string {
	return fmt.Sprintf(sessionPromptTemplate, toJSON(p), toJSON(s))
}

// dailyPrompt splits sessions into today's and the ones within window.
func dailyPrompt(p userProfile, today string, window coach.DateRange, sessions []trainingSession) string {
	todays, nearby := []trainingSession{}, []trainingSession{}
	for _, s := range sessions {
		day := s.Date.String()
		if !window.Contains(day) {
			continue
		}
		nearby = append(nearby, s)
		if day == today {
			todays = append(todays, s)
		}
	}
	return fmt.Sprintf(dailyPromptTemplate, displayName(p), toJSON(p), p.ProfileTag, today, toJSON(todays), toJSON(nearby))
}

func weeklyPrompt(p userProfile, r coach.DateRange, sessions []trainingSession, comps []competition) string {
	intensities := make([]int, len(sessions))
	for i, s := range sessions {
		intensities[i] = s.Intensity
	}
	return fmt.Sprintf(weeklyPromptTemplate, displayName(p), toJSON(p), p.ProfileTag,
		r.Start, r.End, toJSON(sessions), toJSON(comps), coach.CountIntense(intensities))
}

// parseSessionAdvice reads the provider's JSON object. Anything unparsable
// becomes the generation-failed placeholder in all three fields.
func parseSessionAdvice(content string) coach.SessionAdvice {
	var raw struct {
		Before string `json:"conseil_avant"`
		During string `json:"conseil_pendant"`
		After  string `json:"conseil_apres"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		log.Printf("[advice] failed to parse session advice JSON: %v", err)
		return coach.SessionAdvice{Before: generationFailed, During: generationFailed, After: generationFailed}
	}
	return coach.SessionAdvice{Before: raw.Before, During: raw.During, After: raw.After}
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// generateSessionAIAdvice asks the provider for advice on one session and
// replaces whatever was stored for it. force_update is accepted and has no
// effect: session advice is always regenerated.
// POST /api/advice/session. Body: { "session_id": 12, "force_update": true }.
func (h *Handler) generateSessionAIAdvice(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		SessionID   int  `json:"session_id"`
		ForceUpdate bool `json:"force_update"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.SessionID <= 0 {
		apiError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	s, err := h.store.GetSession(c, userID, body.SessionID)
	if err != nil {
		storeError(c, "advice", err, "session not found", "failed to fetch session")
		return
	}
	s.fillAdvice()
	profile, err := h.loadProfile(c, userID)
	if err != nil {
		log.Printf("[advice] profile: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	content, err := h.advisor.Complete(c.Request.Context(), []openAIMessage{
		{Role: "system", Content: adviceSystemPrompt},
		{Role: "user", Content: sessionPrompt(profile, s)},
	}, true)
	if err != nil {
		log.Printf("[advice] session %d: %v", s.ID, err)
		apiError(c, http.StatusBadGateway, "advice provider failed")
		return
	}
	advice := parseSessionAdvice(content)

	saved, err := h.store.ReplaceSessionAIAdvice(c, sessionAIAdvice{
		SessionID: s.ID,
		Before:    advice.Before,
		During:    advice.During,
		After:     advice.After,
		CreatedAt: h.clock(),
	})
	if err != nil {
		log.Printf("[advice] save session advice: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to save advice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "advice": saved})
}

// getSessionAIAdvice returns the stored AI advice for a session.
// GET /api/sessions/:id/ai-advice.
func (h *Handler) getSessionAIAdvice(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetSession(c, userID, id); err != nil {
		storeError(c, "advice", err, "session not found", "failed to fetch session")
		return
	}
	a, err := h.store.GetSessionAIAdvice(c, id)
	if err != nil {
		storeError(c, "advice", err, "no advice for this session", "failed to fetch advice")
		return
	}

	c.JSON(http.StatusOK, a)
}

// generatePeriodAdvice is shared by the daily and weekly endpoints. At most
// one advice of a kind exists per user per calendar day: without
// force_update an existing one is returned as is; with it, a new advice is
// generated and then replaces today's. A provider failure keeps the old one.
func (h *Handler) generatePeriodAdvice(c *gin.Context, kind string) {
	userID := c.GetInt("user_id")

	var body struct {
		ForceUpdate bool `json:"force_update"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	now := h.clock()
	today := now.Format(coach.DayLayout)
	from, to, err := coach.DayBounds(today, now.Location())
	if err != nil {
		log.Printf("[advice] day bounds: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to compute day")
		return
	}

	existing, err := h.store.AdviceCreatedBetween(c, userID, kind, from, to)
	if err != nil {
		log.Printf("[advice] lookup %s: %v", kind, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch advice")
		return
	}
	if len(existing) > 0 && !body.ForceUpdate {
		c.JSON(http.StatusOK, gin.H{"message": "advice already exists for today", "advice": existing[0], "created": false})
		return
	}

	profile, err := h.loadProfile(c, userID)
	if err != nil {
		log.Printf("[advice] profile: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	var prompt string
	if kind == adviceDaily {
		window := coach.DailyWindow(now)
		sessions, err := h.store.ListSessions(c, userID, window.Start, window.End)
		if err != nil {
			storeError(c, "advice", err, "sessions not found", "failed to fetch sessions")
			return
		}
		prompt = dailyPrompt(profile, today, window, sessions)
	} else {
		window := coach.WeeklyWindow(now)
		sessions, err := h.store.ListSessions(c, userID, window.Start, window.End)
		if err != nil {
			storeError(c, "advice", err, "sessions not found", "failed to fetch sessions")
			return
		}
		comps, err := h.store.ListCompetitions(c, userID, window.Start, window.End)
		if err != nil {
			storeError(c, "advice", err, "competitions not found", "failed to fetch competitions")
			return
		}
		prompt = weeklyPrompt(profile, window, sessions, comps)
	}

	content, err := h.advisor.Complete(c.Request.Context(), []openAIMessage{
		{Role: "system", Content: adviceSystemPrompt},
		{Role: "user", Content: prompt},
	}, false)
	if err != nil {
		log.Printf("[advice] %s: %v", kind, err)
		apiError(c, http.StatusBadGateway, "advice provider failed")
		return
	}

	advice := aiAdvice{UserID: userID, Kind: kind, Content: content, CreatedAt: now}
	var saved aiAdvice
	if len(existing) == 0 {
		saved, err = h.store.InsertAdvice(c, advice)
	} else {
		ids := make([]int, len(existing))
		for i, a := range existing {
			ids[i] = a.ID
		}
		log.Printf("[advice] force update: replacing %d %s advice(s) for user %d on %s", len(ids), kind, userID, today)
		saved, err = h.store.ReplaceAdvice(c, userID, ids, advice)
	}
	if err != nil {
		log.Printf("[advice] save %s: %v", kind, err)
		apiError(c, http.StatusInternalServerError, "failed to save advice")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"advice": saved, "created": true})
}

// POST /api/advice/daily. Body (optional): { "force_update": true }.
func (h *Handler) generateDailyAdvice(c *gin.Context) { h.generatePeriodAdvice(c, adviceDaily) }

// POST /api/advice/weekly. Body (optional): { "force_update": true }.
func (h *Handler) generateWeeklyAdvice(c *gin.Context) { h.generatePeriodAdvice(c, adviceWeekly) }

func (h *Handler) latestAdvice(c *gin.Context, kind string) {
	a, err := h.store.LatestAdvice(c, c.GetInt("user_id"), kind)
	if err != nil {
		storeError(c, "advice", err, "no "+kind+" advice yet", "failed to fetch advice")
		return
	}
	c.JSON(http.StatusOK, a)
}

// GET /api/advice/daily.
func (h *Handler) getDailyAdvice(c *gin.Context) { h.latestAdvice(c, adviceDaily) }

// GET /api/advice/weekly.
func (h *Handler) getWeeklyAdvice(c *gin.Context) { h.latestAdvice(c, adviceWeekly) }

// listTips returns every canned tip.
// GET /api/advice/tips.
func (h *Handler) listTips(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tips": coach.Tips()})
}

// getTip returns the canned tip of the day; no provider call.
// GET /api/advice/tip.
func (h *Handler) getTip(c *gin.Context) {
	c.JSON(http.StatusOK, coach.TipOfTheDay(h.clock()))
}
