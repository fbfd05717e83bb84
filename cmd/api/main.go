package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-platform/internal/articles"
	"blog-platform/internal/audit"
	"blog-platform/internal/auth"
	"blog-platform/internal/config"
	"blog-platform/internal/httpapi"
	"blog-platform/internal/migrations"
	"blog-platform/internal/refreshtokens"
	"blog-platform/internal/tokens"
	"blog-platform/internal/users"
	"blog-platform/pkg/logger"
	"blog-platform/pkg/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth, auth.SystemClock)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := storage.OpenPostgres(rootCtx, cfg.PostgresDSN(), storage.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Up(rootCtx, db); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	store, closeStore, err := openRefreshStore(rootCtx, cfg, db)
	if err != nil {
		log.Error("refresh store init failed", "store", cfg.Refresh.Store, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	userSvc := users.NewService(users.NewPostgresRepo(db))
	h := httpapi.Handlers{
		Tokens:   tokens.NewService(authManager, store, userSvc, cfg.Auth),
		Users:    userSvc,
		Articles: articles.NewService(articles.NewPostgresRepo(db), auth.SystemClock),
		Audit:    audit.NewService(audit.NewPostgresRepo(db), auth.SystemClock),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(auth.Authenticate(authManager))

	registerRoutes(r, h, func(ctx context.Context) error {
		return storage.Ping(ctx, db, 2*time.Second)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "refresh_store", cfg.Refresh.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

// openRefreshStore picks the refresh binding backend. The returned close func
// is always safe to call.
func openRefreshStore(ctx context.Context, cfg config.Config, db *sql.DB) (refreshtokens.Store, func(), error) {
	switch cfg.Refresh.Store {
	case config.RefreshStorePostgres:
		return refreshtokens.NewPostgresStore(db), func() {}, nil
	case config.RefreshStoreMemory:
		return refreshtokens.NewMemoryStore(), func() {}, nil
	case config.RefreshStoreRedis:
		rdb, err := storage.OpenRedis(ctx, storage.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			return nil, func() {}, err
		}
		return refreshtokens.NewRedisStore(rdb, cfg.Auth.RefreshTokenTTL), func() { _ = rdb.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown refresh store %q", cfg.Refresh.Store)
	}
}
