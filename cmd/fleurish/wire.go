package main

import (
	"context"
	"fmt"

	"fleurish/internal/adapter/fleurishapi"
	httpadapter "fleurish/internal/adapter/http"
	metricsinmem "fleurish/internal/adapter/metrics/inmemory"
	gormrepo "fleurish/internal/adapter/repo/gorm"
	"fleurish/internal/adapter/repo/memory"
	"fleurish/internal/app/auth"
	"fleurish/internal/app/community"
	"fleurish/internal/app/gardening"
	"fleurish/internal/app/ports"
	"fleurish/internal/app/tasks"
	"fleurish/internal/config"

	"go.uber.org/zap"
)

type application struct {
	backend  ports.Backend
	tokens   ports.TokenStore
	sessions ports.SessionStore
	metrics  *metricsinmem.Recorder
	handler  httpadapter.Handler
}

func buildApp(ctx context.Context, cfg config.Config, log *zap.Logger, doer fleurishapi.Doer) (*application, error) {
	if doer == nil {
		var err error
		doer, err = fleurishapi.NewHertzDoer(cfg.API.Timeout())
		if err != nil {
			return nil, fmt.Errorf("build http client: %w", err)
		}
	}
	backend := fleurishapi.NewClient(cfg.API.BaseURL, doer, log.Named("api"))

	store := memory.NewStore()
	sessions := memory.NewSessionStore(store)
	tokens, err := buildTokenStore(ctx, cfg.Database, store, log)
	if err != nil {
		return nil, err
	}
	metrics := metricsinmem.NewRecorder()
	ucLog := log.Named("app")

	a := &application{
		backend:  backend,
		tokens:   tokens,
		sessions: sessions,
		metrics:  metrics,
	}
	a.handler = httpadapter.Handler{
		LoginUC:       auth.LoginUseCase{Backend: backend, Tokens: tokens, Sessions: sessions, Logger: ucLog},
		RegisterUC:    auth.RegisterUseCase{Backend: backend, Tokens: tokens, Sessions: sessions, Logger: ucLog},
		MeUC:          auth.MeUseCase{Backend: backend, Tokens: tokens, Logger: ucLog},
		LogoutUC:      auth.LogoutUseCase{Tokens: tokens, Sessions: sessions},
		LoadUC:        gardening.LoadUseCase{Backend: backend, Tokens: tokens, Sessions: sessions, Logger: ucLog},
		ViewUC:        gardening.ViewUseCase{Sessions: sessions},
		ActionUC:      gardening.ActionUseCase{Backend: backend, Tokens: tokens, Sessions: sessions, Metrics: metrics, Logger: ucLog},
		RenameUC:      gardening.RenameUseCase{Backend: backend, Tokens: tokens, Sessions: sessions, Metrics: metrics, Logger: ucLog},
		CommunitiesUC: community.ListCommunitiesUseCase{Backend: backend, Logger: ucLog},
		GardensUC:     community.ListGardensUseCase{Backend: backend, Tokens: tokens, Logger: ucLog, FanOut: cfg.Server.DirectoryFanOut},
		LeaderboardUC: community.LeaderboardUseCase{Backend: backend, Tokens: tokens, Logger: ucLog},
		TasksUC:       tasks.UseCase{Backend: backend, Tokens: tokens, Logger: ucLog},
		KPI:           metrics,
	}
	return a, nil
}

// buildTokenStore keeps tokens in postgres when a DSN is configured so
// sessions survive a gateway restart; otherwise they live in memory.
func buildTokenStore(ctx context.Context, db config.DatabaseConfig, store *memory.Store, log *zap.Logger) (ports.TokenStore, error) {
	if db.DSN == "" {
		return memory.NewTokenStore(store), nil
	}
	conn, err := gormrepo.OpenPostgres(db.DSN)
	if err != nil {
		return nil, err
	}
	if db.AutoMigrate {
		if err := gormrepo.ApplyMigrations(ctx, conn, gormrepo.Migrations()); err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}
	log.Info("session tokens stored in postgres")
	return gormrepo.NewTokenRepo(conn), nil
}
