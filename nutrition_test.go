package main

import (
	"math"
	"net/http"
	"testing"
	"time"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func addFoodOK(t *testing.T, env *testEnv, body string) todayNutrition {
	t.Helper()
	w := env.do("POST", "/api/nutrition/today/foods", env.token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("add food: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decode[todayNutrition](t, w)
}

func TestNutrition_AddRemoveFlow(t *testing.T) {
	env := setupTest(t)

	// p1 (Poulet): 31 g protein, 3.6 g fat per 100 g.
	d := addFoodOK(t, env, `{"ingredient_id":"p1"}`)
	if d.Date != "2026-03-04" {
		t.Errorf("expected today's date, got %s", d.Date)
	}
	if len(d.Consumed) != 1 || d.Consumed[0].Quantity != 100 || d.Consumed[0].ID == "" {
		t.Fatalf("unexpected entry: %+v", d.Consumed)
	}
	first := d.Consumed[0].ID

	d = addFoodOK(t, env, `{"ingredient_id":"p1","quantity":50}`)
	if !near(d.Totals.Protein, 46.5) {
		t.Errorf("expected 46.5 g protein, got %v", d.Totals.Protein)
	}

	// Removing by ingredient undoes the latest (50 g) entry only.
	w := env.do("DELETE", "/api/nutrition/today/foods/p1", env.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	d = decode[todayNutrition](t, w)
	if len(d.Consumed) != 1 || d.Consumed[0].ID != first {
		t.Fatalf("expected only the first entry left, got %+v", d.Consumed)
	}
	if !near(d.Totals.Protein, 31) {
		t.Errorf("expected 31 g protein, got %v", d.Totals.Protein)
	}

	// GET recomputes from the stored list.
	w = env.do("GET", "/api/nutrition/today", env.token, "")
	got := decode[todayNutrition](t, w)
	if len(got.Consumed) != 1 || !near(got.Totals.Protein, 31) {
		t.Errorf("GET disagrees with last mutation: %+v", got)
	}

	if w := env.do("DELETE", "/api/nutrition/today/foods/c1", env.token, ""); w.Code != http.StatusNotFound {
		t.Errorf("remove not consumed: expected 404, got %d", w.Code)
	}

	w = env.do("DELETE", "/api/nutrition/today/entries/"+got.Consumed[0].ID, env.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove entry: expected 200, got %d", w.Code)
	}
	if d := decode[todayNutrition](t, w); len(d.Consumed) != 0 || d.Totals.Protein != 0 {
		t.Errorf("expected empty day, got %+v", d)
	}
	if w := env.do("DELETE", "/api/nutrition/today/entries/missing", env.token, ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown entry: expected 404, got %d", w.Code)
	}
}

func TestNutrition_AddThenRemoveRestoresTotals(t *testing.T) {
	env := setupTest(t)

	before := addFoodOK(t, env, `{"ingredient_id":"p1","quantity":150}`).Totals
	after := addFoodOK(t, env, `{"ingredient_id":"p1","quantity":10}`).Totals
	if near(after.Protein, before.Protein) {
		t.Fatalf("second add should change totals, got %+v", after)
	}

	w := env.do("DELETE", "/api/nutrition/today/foods/p1", env.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	back := decode[todayNutrition](t, w)
	if !near(back.Totals.Protein, before.Protein) || !near(back.Totals.Fat, before.Fat) {
		t.Errorf("totals after add+remove = %+v, want %+v", back.Totals, before)
	}
	if len(back.Consumed) != 1 || back.Consumed[0].Quantity != 150 {
		t.Errorf("expected the 150 g entry to remain, got %+v", back.Consumed)
	}

	w = env.do("GET", "/api/nutrition/today", env.token, "")
	if got := decode[todayNutrition](t, w); !near(got.Totals.Protein, before.Protein) {
		t.Errorf("stored totals = %+v, want %+v", got.Totals, before)
	}
}

func TestNutrition_AddValidation(t *testing.T) {
	env := setupTest(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing ingredient", `{}`},
		{"unknown ingredient", `{"ingredient_id":"zz"}`},
		{"zero quantity", `{"ingredient_id":"p1","quantity":0}`},
		{"negative quantity", `{"ingredient_id":"p1","quantity":-10}`},
		{"too large", `{"ingredient_id":"p1","quantity":6000}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := env.do("POST", "/api/nutrition/today/foods", env.token, tc.body); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestNutrition_NewDayStartsEmpty(t *testing.T) {
	env := setupTest(t)
	addFoodOK(t, env, `{"ingredient_id":"c1","quantity":200}`)

	env.h.now = func() time.Time { return fixedNow.AddDate(0, 0, 1) }
	w := env.do("GET", "/api/nutrition/today", env.token, "")
	d := decode[todayNutrition](t, w)
	if d.Date != "2026-03-05" || len(d.Consumed) != 0 || d.Totals.Carbs != 0 {
		t.Errorf("expected empty record for the new day, got %+v", d)
	}
}

func TestNutrition_GoalsAndProgress(t *testing.T) {
	env := setupTest(t)

	if w := env.do("PUT", "/api/profile", env.token, `{"first_name":"Alice","weight_kg":70}`); w.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	d := addFoodOK(t, env, `{"ingredient_id":"p1","quantity":100}`)

	if d.Goals.Protein != 56 || d.Goals.Carbs != 280 || d.Goals.Fat != 84 {
		t.Errorf("unexpected goals %+v", d.Goals)
	}
	if !near(d.Remaining.Protein, 25) {
		t.Errorf("expected 25 g protein remaining, got %v", d.Remaining.Protein)
	}
	if !near(d.Percent.Carbs, 0) {
		t.Errorf("expected 0%% carbs, got %v", d.Percent.Carbs)
	}
}

func TestListIngredients(t *testing.T) {
	env := setupTest(t)

	w := env.do("GET", "/api/ingredients?category=poisson", env.token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[struct {
		Ingredients []struct {
			ID string `json:"id"`
		} `json:"ingredients"`
		Categories []string `json:"categories"`
	}](t, w)
	if len(resp.Ingredients) != 4 {
		t.Errorf("expected 4 poisson ingredients, got %d", len(resp.Ingredients))
	}
	if len(resp.Categories) == 0 {
		t.Error("expected categories")
	}
}
