package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/api"
	"github.com/roksva123/go-taskboard-backend/internal/metrics"
	"github.com/roksva123/go-taskboard-backend/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg, log, repo := a.cfg, a.log, a.repo

	// MIGRATIONS
	if err := repo.RunMigrations(); err != nil {
		return err
	}

	// SERVICES
	m := metrics.New()
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	auth := service.NewAuthService(repo, tokens, cfg.AllowPlaintextPasswords, log)
	updater := service.NewCompletionUpdater(repo, repo, repo, m, log)

	// ADMIN SEED
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := auth.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Error("failed seeding admin", zap.Error(err))
		}
	}
	if cfg.AllowPlaintextPasswords {
		log.Warn("plaintext stored passwords are accepted; set ALLOW_PLAINTEXT_PASSWORDS=false once accounts are rehashed")
	}

	// ROUTER
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Log:                log,
		Metrics:            m,
		Store:              repo,
		DB:                 repo,
		Auth:               auth,
		Access:             service.NewAccessService(repo, repo, repo, m, log),
		Tasks:              service.NewTaskService(repo, repo, repo, updater, log),
		Projects:           service.NewProjectService(repo, repo, repo, repo, updater, log),
		Leaders:            service.NewLeaderService(repo, repo, repo, repo, log),
		Users:              service.NewUserService(repo, repo, log),
		CORSOrigins:        cfg.CORSOrigins,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
	})

	// START SERVER
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
