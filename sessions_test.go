package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/NoaRodriguez/PFE-sub000/coach"
)

func createTestSession(t *testing.T, env *testEnv, body string) trainingSession {
	t.Helper()
	w := env.do("POST", "/api/sessions", env.token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decode[trainingSession](t, w)
}

func TestCreateSession_FreezesRuleAdvice(t *testing.T) {
	env := setupTest(t)

	s := createTestSession(t, env, `{"date":"2026-03-04","title":"Fractionné piste","sport":"natation","duration_min":60,"type":"frac","intensity":3}`)

	want := coach.GenerateAdvice(coach.SportSwimming, coach.SessionFractioned, 60)
	if s.Advice == nil || *s.Advice != want {
		t.Fatalf("expected interval advice %+v, got %+v", want, s.Advice)
	}

	// Changing type and duration does not touch the stored advice.
	w := env.do("PUT", fmt.Sprintf("/api/sessions/%d", s.ID), env.token, `{"type":"endurance","duration_min":150}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decode[trainingSession](t, w)
	if updated.Type != "endurance" || updated.DurationMin != 150 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Advice == nil || *updated.Advice != want {
		t.Errorf("advice changed on update: %+v", updated.Advice)
	}

	// Explicit regeneration picks up the new fields.
	w = env.do("POST", fmt.Sprintf("/api/sessions/%d/rule-advice", s.ID), env.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("rule-advice: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	regen := decode[trainingSession](t, w)
	wantRegen := coach.GenerateAdvice(coach.SportSwimming, coach.SessionEndurance, 150)
	if regen.Advice == nil || *regen.Advice != wantRegen {
		t.Errorf("expected long-endurance advice after regeneration, got %+v", regen.Advice)
	}
}

func TestCreateSession_Validation(t *testing.T) {
	env := setupTest(t)

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing title", `{"date":"2026-03-04","sport":"course","duration_min":30,"type":"footing"}`, "date, title, sport and type are required"},
		{"bad date", `{"date":"04/03/2026","title":"x","sport":"course","duration_min":30,"type":"footing"}`, "invalid date, expected YYYY-MM-DD"},
		{"unknown sport", `{"date":"2026-03-04","title":"x","sport":"ski","duration_min":30,"type":"footing"}`, "sport must be one of: course, velo, natation, trail, triathlon, autre"},
		{"unknown type", `{"date":"2026-03-04","title":"x","sport":"course","duration_min":30,"type":"yoga"}`, "type must be one of: frac, endurance, footing, tempo, recuperation, interval, specific"},
		{"zero duration", `{"date":"2026-03-04","title":"x","sport":"course","duration_min":0,"type":"footing"}`, "duration_min must be greater than 0"},
		{"intensity too high", `{"date":"2026-03-04","title":"x","sport":"course","duration_min":30,"type":"footing","intensity":4}`, "intensity must be between 0 and 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do("POST", "/api/sessions", env.token, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if got := errorMessage(t, w); got != tc.msg {
				t.Errorf("error = %q, want %q", got, tc.msg)
			}
		})
	}
}

func TestSessions_OwnershipAndDelete(t *testing.T) {
	env := setupTest(t)
	s := createTestSession(t, env, `{"date":"2026-03-04","title":"Footing","sport":"course","duration_min":40,"type":"footing","intensity":1}`)
	path := fmt.Sprintf("/api/sessions/%d", s.ID)

	if w := env.do("GET", path, env.other, ""); w.Code != http.StatusNotFound {
		t.Errorf("other user GET: expected 404, got %d", w.Code)
	}
	if w := env.do("DELETE", path, env.other, ""); w.Code != http.StatusNotFound {
		t.Errorf("other user DELETE: expected 404, got %d", w.Code)
	}
	if w := env.do("GET", "/api/sessions/abc", env.token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}

	if w := env.do("DELETE", path, env.token, ""); w.Code != http.StatusNoContent {
		t.Fatalf("DELETE: expected 204, got %d", w.Code)
	}
	if w := env.do("DELETE", path, env.token, ""); w.Code != http.StatusNotFound {
		t.Errorf("second DELETE: expected 404, got %d", w.Code)
	}
}

func TestListSessions_RangeAndOrder(t *testing.T) {
	env := setupTest(t)
	for _, d := range []string{"2026-03-01", "2026-03-05", "2026-03-03"} {
		createTestSession(t, env, `{"date":"`+d+`","title":"s","sport":"velo","duration_min":60,"type":"endurance","intensity":1}`)
	}

	w := env.do("GET", "/api/sessions?start=2026-03-02&end=2026-03-31", env.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	list := decode[[]trainingSession](t, w)
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions in range, got %d", len(list))
	}
	if list[0].Date.String() != "2026-03-05" || list[1].Date.String() != "2026-03-03" {
		t.Errorf("expected newest first, got %s, %s", list[0].Date, list[1].Date)
	}

	if w := env.do("GET", "/api/sessions?start=2026-03-10&end=2026-03-01", env.token, ""); w.Code != http.StatusBadRequest {
		t.Errorf("inverted range: expected 400, got %d", w.Code)
	}
	if w := env.do("GET", "/api/sessions", env.other, ""); len(decode[[]trainingSession](t, w)) != 0 {
		t.Error("other user should see no sessions")
	}
}

func TestCompetitionsCRUD(t *testing.T) {
	env := setupTest(t)

	w := env.do("POST", "/api/competitions", env.token, `{"date":"2026-04-12","name":"Marathon de Paris","sport":"course","distance_km":42.195,"intensity":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	comp := decode[competition](t, w)
	path := fmt.Sprintf("/api/competitions/%d", comp.ID)

	if w := env.do("POST", "/api/competitions", env.token, `{"date":"2026-04-12","name":"x","sport":"course","intensity":5}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad intensity: expected 400, got %d", w.Code)
	}

	w = env.do("PUT", path, env.token, `{"location":"Paris"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decode[competition](t, w)
	if updated.Location == nil || *updated.Location != "Paris" || updated.Name != "Marathon de Paris" {
		t.Errorf("partial update failed: %+v", updated)
	}

	if w := env.do("GET", path, env.other, ""); w.Code != http.StatusNotFound {
		t.Errorf("other user: expected 404, got %d", w.Code)
	}
	if w := env.do("DELETE", path, env.token, ""); w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}
	if w := env.do("GET", path, env.token, ""); w.Code != http.StatusNotFound {
		t.Errorf("after delete: expected 404, got %d", w.Code)
	}
}
