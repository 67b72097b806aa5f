package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"party-site/internal/auth"
	"party-site/internal/cache"
	"party-site/internal/config"
	"party-site/internal/controller"
	"party-site/internal/countdown"
	"party-site/internal/database"
	"party-site/internal/gateway"
	"party-site/internal/menu"
	"party-site/internal/messages"
	"party-site/internal/queue"
	"party-site/internal/routes"
	"party-site/internal/rsvp"
	"party-site/internal/worker"
	"party-site/pkg/logger"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	cfg := config.Get()

	// Storage: live gateway over Postgres, or the unconfigured variant when
	// no backend is set. The site still serves in that degraded state; every
	// store operation surfaces a configuration error instead.
	var gw gateway.Gateway = gateway.Unconfigured{}
	front := gw
	if db := database.InitDB(ctx); db != nil {
		if err := database.MigrateOrCreateSchema(ctx); err != nil {
			logger.Error(ctx, "Schema migration failed", "error", err)
			os.Exit(1)
		}
		gw = gateway.NewPostgres(db)
		front = gw

		// Optional Kafka ingestion for RSVPs: publish on submit, apply in
		// the background worker. Without brokers the flow writes straight
		// through the gateway.
		if queue.Enabled() {
			queue.EnsureTopic(ctx)
			front = gateway.NewQueued(gw, queue.NewPublisher(ctx))
			go worker.Run(ctx, gw)
		}
	}

	// Pre-warm Redis (optional; list reads fall through on miss)
	cache.Client(ctx)

	guard := auth.NewGuard(auth.Config{User: cfg.AdminUser, Pass: cfg.AdminPass})
	if !guard.Configured() {
		logger.Warn(ctx, "Admin credentials not set; admin login disabled")
	}

	engine := countdown.NewEngine()
	go engine.Start(ctx)

	h := &controller.Handlers{
		Engine:   engine,
		Guard:    guard,
		Menu:     menu.NewController(front, guard),
		Messages: messages.NewController(front, guard),
		RSVP:     rsvp.NewFlow(front),
	}

	// Warm the controller views so admin mutations line up with the store
	// even while the list cache is still serving. Best-effort: the
	// controllers also sync themselves before their first mutation.
	if _, unconfigured := gw.(gateway.Unconfigured); !unconfigured {
		if err := h.Menu.Load(ctx); err != nil {
			logger.Warn(ctx, "Initial menu load failed", "error", err)
		}
		if err := h.Messages.Load(ctx); err != nil {
			logger.Warn(ctx, "Initial messages load failed", "error", err)
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	engine.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}

// loadEnvFile reads a .env file and sets env vars (only if not already set).
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
