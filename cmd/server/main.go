package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/bladecost/internal/config"
	"github.com/Simplici0/bladecost/internal/db"
	"github.com/Simplici0/bladecost/internal/migrations"
	"github.com/Simplici0/bladecost/internal/seed"
	"github.com/Simplici0/bladecost/internal/store"
)

func main() {
	tokenFor := flag.String("token", "", "print the bearer token of the named API client and exit")
	flag.Parse()

	cfg := config.Load()
	if cfg.APISecret == "" {
		if !cfg.IsDev() {
			log.Fatalf("API_SECRET is required outside dev")
		}
		log.Print("warning: API_SECRET is not set")
	}

	if *tokenFor != "" {
		fmt.Println(newAuthService(nil, cfg.APISecret).createToken(*tokenFor))
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	stats, err := seed.Run(database, seed.Config{AdminClient: cfg.AdminClient})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	log.Printf("seed: %d inserts, %d updates", stats.Inserts, stats.Updates)

	st, err := store.New(database, cfg.CacheSize)
	if err != nil {
		log.Fatalf("failed to create store: %v", err)
	}

	srv := &server{
		auth:        newAuthService(st, cfg.APISecret),
		store:       st,
		db:          database,
		maxSections: cfg.MaxSections,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	srv.routes(r)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
