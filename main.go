package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Adarsha-Hegade/data-entry1/internal/autosave"
	"github.com/Adarsha-Hegade/data-entry1/internal/blob"
	"github.com/Adarsha-Hegade/data-entry1/internal/config"
	"github.com/Adarsha-Hegade/data-entry1/internal/gelf"
	"github.com/Adarsha-Hegade/data-entry1/internal/handler"
	"github.com/Adarsha-Hegade/data-entry1/internal/logger"
	"github.com/Adarsha-Hegade/data-entry1/internal/repository"
	"github.com/Adarsha-Hegade/data-entry1/internal/router"
	"github.com/Adarsha-Hegade/data-entry1/internal/service"
	"github.com/Adarsha-Hegade/data-entry1/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()

	// GELF UDP logging fan-out
	out := io.Writer(os.Stdout)
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			slog.Warn("GELF init failed", "addr", cfg.GelfAddr, "error", err)
		} else {
			out = io.MultiWriter(os.Stdout, gelfWriter)
		}
	}
	log := logger.Setup(cfg.Env, out)
	slog.SetDefault(log)
	slog.Info("config loaded", "env", cfg.Env, "addr", cfg.HTTPServer.Address)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.Database.DSN)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	blobs, err := blob.NewStore(ctx, cfg.Blob.Bucket, cfg.Blob.Prefix, cfg.Blob.Region, cfg.Blob.PublicBaseURL)
	if err != nil {
		slog.Error("failed to init blob store", "error", err)
		os.Exit(1)
	}

	// Repositories
	profileRepo := repository.NewProfileRepo(pool)
	taskRepo := repository.NewTaskRepo(pool)
	subRepo := repository.NewSubmissionRepo(pool)

	// Services
	authSvc := service.NewAuthService(profileRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	profileSvc := service.NewProfileService(profileRepo, authSvc)
	taskSvc := service.NewTaskService(taskRepo, blobs)
	subSvc := service.NewSubmissionService(subRepo)

	// Draft auto-save
	saver := autosave.NewSaver(subRepo, cfg.Autosave.Interval, log)
	defer saver.Close()

	// Handlers
	authH := handler.NewAuthHandler(authSvc, profileRepo)
	taskH := handler.NewTaskHandler(taskSvc)
	subH := handler.NewSubmissionHandler(subSvc, saver)
	profileH := handler.NewProfileHandler(profileSvc)

	r := router.New(cfg.Auth.JWTSecret, authH, taskH, subH, profileH)

	server := http.Server{
		Addr:        cfg.HTTPServer.Address,
		Handler:     r,
		ReadTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout: cfg.HTTPServer.IdleTimeout,
	}
	go func() {
		slog.Info("starting http server", "addr", cfg.HTTPServer.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down http server")
	if err := server.Shutdown(context.Background()); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
}
