package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"technest/internal/assistant"
	"technest/internal/auth"
	"technest/internal/config"
	"technest/internal/db"
	"technest/internal/httpapi"
	"technest/internal/kv"
	"technest/internal/store"
	"technest/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Open the relational store
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	// Open the key-value store
	kvs, err := kv.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("open kv store: %v", err)
	}
	defer func() {
		if err := kvs.Close(); err != nil {
			log.Printf("close kv store: %v", err)
		}
	}()

	policy := auth.NewPolicy(cfg.Auth.AdminUsername)
	accounts := store.NewCredentials(kvs, policy)
	sessions := store.NewSessions(accounts, kvs)

	// Pick up a session persisted by a previous run.
	if a, err := sessions.Restore(); err != nil {
		log.Printf("restore session: %v", err)
	} else if a != nil {
		log.Printf("restored session for %s", a.Username)
	}

	srv := &httpapi.Server{
		Cfg:         cfg,
		Policy:      policy,
		Accounts:    accounts,
		Sessions:    sessions,
		Scope:       store.NewScope(kvs),
		Equipment:   repository.NewEquipmentRepository(d),
		Maintenance: repository.NewMaintenanceRepository(d),
		Assistant:   assistant.New(assistant.Config(cfg.Assistant)),
	}

	shutdown, err := httpapi.Start(srv)
	if err != nil {
		log.Fatalf("start http: %v", err)
	}

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
