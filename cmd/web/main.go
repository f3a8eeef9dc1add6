package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/cue-bracket/internal/archive"
	"github.com/AdamBeresnev/cue-bracket/internal/cache"
	"github.com/AdamBeresnev/cue-bracket/internal/config"
	"github.com/AdamBeresnev/cue-bracket/internal/db"
	"github.com/AdamBeresnev/cue-bracket/internal/middleware"
	"github.com/AdamBeresnev/cue-bracket/internal/service"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := db.InitDB(cfg.DatabaseURL)
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	middleware.InitAuth(cfg.OAuth)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	var bracketCache cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatal("Failed to connect to redis:", err)
		}
		defer rc.Close()
		bracketCache = rc
		log.Println("Bracket cache enabled.")
	}

	archiver, err := archive.NewFromConfig(ctx, cfg.ArchiveBucket, cfg.AWSRegion)
	if err != nil {
		log.Fatal("Failed to configure bracket archive:", err)
	}

	tournamentStore := store.NewTournamentStore(database)
	userStore := store.NewUserStore(database)
	opts := []service.Option{service.WithCache(bracketCache), service.WithArchiver(archiver)}

	app := &application{
		sessionManager: sessionManager,
		userStore:      userStore,
		users:          service.NewUserService(userStore),
		tournaments:    service.NewTournamentService(database, tournamentStore, opts...),
		matches:        service.NewMatchService(database, tournamentStore, opts...),
		entries:        service.NewEntryService(database, tournamentStore),
		limiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		corsOrigins:    cfg.CORSOrigins,
		trustProxy:     cfg.TrustProxy,
	}
	go pruneVisitors(ctx, app.limiter)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func pruneVisitors(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune(3 * time.Minute)
		}
	}
}
