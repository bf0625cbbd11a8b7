package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/redis/v3"
	"go.uber.org/zap"

	"groovy/auth"
	"groovy/config"
	"groovy/handlers"
	"groovy/middleware"
	"groovy/migrate"
	"groovy/repository"
	"groovy/session"
	"groovy/uploads"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting", zap.String("addr", cfg.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := repository.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	songRepo := repository.NewSongRepo(db)

	if err := auth.EnsureAdmin(ctx, userRepo, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("admin provisioning", zap.Error(err))
	}

	files, err := uploads.New(cfg.UploadDir)
	if err != nil {
		logger.Fatal("upload dir", zap.Error(err))
	}

	// Redis-backed sessions when configured, fiber's in-memory storage otherwise.
	var storage fiber.Storage
	if cfg.RedisAddr != "" {
		storage = redis.New(redis.Config{URL: "redis://" + cfg.RedisAddr})
	}
	sessions := session.New(storage, cfg.SessionTTL)

	h := handlers.New(userRepo, songRepo, files, sessions, logger)

	app := fiber.New()

	app.Get("/", h.Index)

	// Authentication routes
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)

	// Session-gated catalog routes
	authRequired := middleware.AuthRequired(sessions)
	app.Get("/dashboard", authRequired, h.Dashboard)
	app.Get("/profile", authRequired, h.Profile)
	app.Post("/upload", authRequired, h.Upload)
	app.Put("/songs/:songID", authRequired, h.EditSong)
	app.Delete("/songs/:songID", authRequired, h.DeleteSong)

	// Admin routes
	app.Post("/admin/login", h.AdminLogin)
	app.Post("/admin/logout", h.Logout)
	app.Get("/admin/users", middleware.AdminRequired(sessions, userRepo, logger), h.AdminListUsers)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(cfg.Addr) }()

	select {
	case err := <-errCh:
		logger.Fatal("listen", zap.Error(err))
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}
}
