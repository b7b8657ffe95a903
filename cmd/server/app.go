package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/config"
	"github.com/roksva123/go-taskboard-backend/internal/logging"
	"github.com/roksva123/go-taskboard-backend/internal/repository"
)

// app holds what every command needs: config, logger and an open database.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	repo *repository.PostgresRepo
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	repo, err := repository.NewPostgresRepo(ctx, cfg.DSN())
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &app{cfg: cfg, log: log, repo: repo}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
