package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/melisasvr/Agile-Project-Consultant/internal/config"
	"github.com/melisasvr/Agile-Project-Consultant/internal/hub"
	"github.com/melisasvr/Agile-Project-Consultant/internal/intent"
	"github.com/melisasvr/Agile-Project-Consultant/internal/recommend"
	"github.com/melisasvr/Agile-Project-Consultant/internal/repository"
	"github.com/melisasvr/Agile-Project-Consultant/internal/service"
	httptransport "github.com/melisasvr/Agile-Project-Consultant/internal/transport/http"
	"github.com/melisasvr/Agile-Project-Consultant/internal/transport/ws"
	"github.com/melisasvr/Agile-Project-Consultant/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting agile consultant...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	if cfg.DatabaseURL != "" {
		log.Printf("Database: %s", cfg.DatabaseURL)
	} else {
		log.Printf("Database: in-memory (session TTL: %v)", cfg.SessionTTL)
	}

	// Initialize store
	var (
		db  store.Store
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = store.NewSQLiteStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
	} else {
		db = store.NewMemoryStore(cfg.SessionTTL)
	}
	defer db.Close()

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize recommendation engine and intent router
	engine := recommend.New(policyEngine)
	router := intent.NewRouter(engine)

	// Initialize service
	svc := service.New(db, engine, router, cfg)

	// Initialize WebSocket hub
	h := hub.NewHub()
	go h.Run()

	wsServer := ws.NewServer(cfg, h, svc)

	// Create Echo server
	e := httptransport.NewServer(svc, wsServer)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down agile consultant...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Agile consultant stopped")
}
