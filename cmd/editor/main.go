package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"target-editor/internal/common/config"
	"target-editor/internal/common/middleware"
	"target-editor/internal/editor/handlers"
	"target-editor/internal/editor/render"
	"target-editor/internal/editor/repository"
	"target-editor/internal/editor/service"
	"target-editor/internal/editor/session"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Target Editor Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := repository.OpenSQLite(cfg.LibraryDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	storage := service.NewFileStorage(cfg.TargetsDir)
	if err := storage.EnsureDir(); err != nil {
		log.Fatalf("targets dir: %v", err)
	}

	library := service.NewLibrary(storage, repo, nil)
	if added, err := library.Sync(context.Background()); err != nil {
		log.Printf("[LIBRARY] Sync failed: %v", err)
	} else if added > 0 {
		log.Printf("[LIBRARY] Registered %d targets found in %s", added, cfg.TargetsDir)
	}

	sessions := session.NewManager()
	go closeIdleSessions(sessions, time.Duration(cfg.SessionTTL)*time.Minute)

	canvas := render.DefaultOptions()
	canvas.Width = cfg.CanvasWidth
	canvas.Height = cfg.CanvasHeight

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Target Editor",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(cfg.Environment))
	app.Use(middleware.CORS())

	handlers.Register(app,
		handlers.NewHealthHandler(repo),
		handlers.NewSessionHandler(sessions, library, canvas),
		handlers.NewLibraryHandler(library, sessions),
	)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Target Editor on %s (env: %s, targets: %s)", addr, cfg.Environment, cfg.TargetsDir)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func closeIdleSessions(sessions *session.Manager, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for range ticker.C {
		sessions.CloseIdle(ttl)
	}
}
