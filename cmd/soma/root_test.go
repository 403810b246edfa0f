package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		adviceExplain, totalsToday = false, false
		ingredientsCategory, tipDate, catalogPath = "", "", ""
	})
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "advice") {
		t.Fatalf("expected subcommands in help, got %q", out)
	}
}

func TestAdviceExplain(t *testing.T) {
	cases := []struct {
		args []string
		rule string
	}{
		{[]string{"course", "recuperation", "30"}, "rule: recovery"},
		{[]string{"velo", "endurance", "120"}, "rule: long-endurance"},
		{[]string{"natation", "frac", "60"}, "rule: interval"},
		{[]string{"trail", "tempo", "50"}, "rule: default"},
	}
	for _, tc := range cases {
		out, err := run(t, append([]string{"advice", "--explain"}, tc.args...)...)
		if err != nil {
			t.Fatalf("advice %v: %v", tc.args, err)
		}
		if !strings.Contains(out, tc.rule) {
			t.Errorf("advice %v: expected %q in %q", tc.args, tc.rule, out)
		}
	}
}

func TestAdviceRejectsBadMinutes(t *testing.T) {
	if _, err := run(t, "advice", "course", "tempo", "abc"); err == nil {
		t.Fatal("expected error for non-numeric minutes")
	}
}

func TestGoals(t *testing.T) {
	out, err := run(t, "goals", "70")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"protein: 56g", "carbs:   280g", "fat:     84g"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestTotals(t *testing.T) {
	dir := t.TempDir()
	yamlLog := filepath.Join(dir, "day.yaml")
	if err := os.WriteFile(yamlLog, []byte(`date: "2026-03-02"
consumed:
  - {ingredient_id: p1, quantity_g: 200}
  - {ingredient_id: zz, quantity_g: 50}
`), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonLog := filepath.Join(dir, "day.json")
	if err := os.WriteFile(jsonLog, []byte(`{"date":"2026-03-02","consumed":[{"ingredient_id":"p1","quantity_g":200},{"ingredient_id":"zz","quantity_g":50}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{yamlLog, jsonLog} {
		out, err := run(t, "totals", path)
		if err != nil {
			t.Fatalf("totals %s: %v", path, err)
		}
		for _, want := range []string{"entries: 2", "unknown: 1", "protein: 62.0g", "fat:     7.2g"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: expected %q in %q", filepath.Base(path), want, out)
			}
		}
	}
}

func TestTotals_TodayResetsStaleLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.yaml")
	if err := os.WriteFile(path, []byte("date: \"2001-01-01\"\nconsumed:\n  - {ingredient_id: p1, quantity_g: 100}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "totals", "--today", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "entries: 0") || !strings.Contains(out, "protein: 0.0g") {
		t.Errorf("expected empty totals for stale log, got %q", out)
	}
}

func TestIngredientsCategory(t *testing.T) {
	out, err := run(t, "ingredients", "--category", "poisson")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Saumon") || strings.Contains(out, "Poulet") {
		t.Errorf("unexpected listing: %q", out)
	}
}

func TestTipForDate(t *testing.T) {
	a, err := run(t, "tip", "--date", "2026-01-01")
	if err != nil {
		t.Fatal(err)
	}
	b, err := run(t, "tip", "--date", "2026-01-09")
	if err != nil {
		t.Fatal(err)
	}
	// YearDay 1 and 9 are 8 apart, one full rotation.
	if a != b {
		t.Errorf("expected same tip 8 days apart:\n%s\n%s", a, b)
	}
	if _, err := run(t, "tip", "--date", "01/01/2026"); err == nil {
		t.Error("expected error for bad date")
	}
}
