package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/NoaRodriguez/PFE-sub000/coach"
	"github.com/joho/godotenv"
)

// config is read once at startup from the environment (and .env if present).
type config struct {
	Addr            string
	DBURL           string // empty: in-memory store
	OpenAIKey       string
	OpenAIBaseURL   string
	OpenAIModel     string
	CORSOrigins     []string
	IngredientsFile string
	Timezone        string
	GinMode         string
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// loadConfig loads .env (a missing file is fine) and reads the settings.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := config{
		Addr:            envOr("ADDR", ":8080"),
		DBURL:           os.Getenv("DB_URL"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   strings.TrimRight(envOr("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
		OpenAIModel:     envOr("OPENAI_MODEL", "gpt-4o"),
		IngredientsFile: os.Getenv("INGREDIENTS_FILE"),
		Timezone:        os.Getenv("APP_TIMEZONE"),
		GinMode:         os.Getenv("GIN_MODE"),
	}
	for _, o := range strings.Split(envOr("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if _, err := cfg.location(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// location resolves APP_TIMEZONE; empty means the process's local zone.
func (c config) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// catalog returns the ingredient table: INGREDIENTS_FILE when set, the
// embedded one otherwise.
func (c config) catalog() (coach.Catalog, error) {
	if c.IngredientsFile == "" {
		return coach.DefaultCatalog(), nil
	}
	f, err := os.Open(c.IngredientsFile)
	if err != nil {
		return nil, fmt.Errorf("open ingredients file: %w", err)
	}
	defer f.Close()
	return coach.LoadCatalog(f)
}
