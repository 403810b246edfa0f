package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/crypto/bcrypt"
)

// newCORS answers preflight requests for the configured origins.
func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
		MaxAge:         600,
	})
}

// newRouter builds the gin engine with logging, recovery and all routes.
func newRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)
	return router
}

// seedDevUser creates a demo/demo account so the in-memory server is usable.
func seedDevUser(m *memoryStore) {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash dev password: %v", err)
	}
	u := m.addUser("demo", "demo@localhost", string(hash), uuid.New().String())
	log.Printf("[main] dev user %q ready, token %s", u.Username, u.AuthToken)
}

func main() {
	log.SetPrefix("soma-api: ")
	log.SetFlags(0)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	loc, err := cfg.location()
	if err != nil {
		log.Fatal(err)
	}
	catalog, err := cfg.catalog()
	if err != nil {
		log.Fatal(err)
	}

	var store Store
	if cfg.DBURL == "" {
		log.Printf("[main] DB_URL not set, using in-memory store")
		mem := newMemoryStore()
		seedDevUser(mem)
		store = mem
	} else {
		pool := getDBPool(cfg.DBURL)
		defer pool.Close()
		store = newPostgresStore(pool)
	}

	h := newHandler(store, catalog, newOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel), loc)
	handler := newCORS(cfg.CORSOrigins).Handler(newRouter(h))

	fmt.Printf("Starting soma api on %s (%d ingredients)...\n", cfg.Addr, len(catalog))
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}
