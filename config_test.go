package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ADDR", "DB_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "CORS_ORIGINS", "INGREDIENTS_FILE", "APP_TIMEZONE", "GIN_MODE"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.OpenAIBaseURL != "https://api.openai.com" || cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if cfg.DBURL != "" {
		t.Errorf("DBURL = %q, want empty", cfg.DBURL)
	}
	if loc, _ := cfg.location(); loc != time.Local {
		t.Errorf("expected local timezone, got %v", loc)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ADDR", ":9090")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:4000/")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.OpenAIBaseURL != "http://localhost:4000" {
		t.Errorf("trailing slash not trimmed: %q", cfg.OpenAIBaseURL)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if loc, err := cfg.location(); err != nil || loc != time.UTC {
		t.Errorf("location = %v, %v", loc, err)
	}

	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestConfigCatalog(t *testing.T) {
	cfg := config{}
	cat, err := cfg.catalog()
	if err != nil || len(cat) != 30 {
		t.Fatalf("embedded catalog: %d items, err %v", len(cat), err)
	}

	path := filepath.Join(t.TempDir(), "ingredients.yaml")
	if err := os.WriteFile(path, []byte("- {id: z1, name: Quinoa, category: feculent, proteins: 4.4, carbs: 21, fats: 1.9}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.IngredientsFile = path
	cat, err = cfg.catalog()
	if err != nil {
		t.Fatalf("file catalog: %v", err)
	}
	if _, ok := cat.Lookup("z1"); !ok || len(cat) != 1 {
		t.Errorf("unexpected catalog %+v", cat)
	}

	cfg.IngredientsFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.catalog(); err == nil {
		t.Error("expected error for missing file")
	}
}
