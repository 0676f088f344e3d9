// Package app assembles the registry and envelope builder from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/internal/catalog"
	"github.com/fastygo/apiresponse/internal/config"
	pgInfra "github.com/fastygo/apiresponse/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/apiresponse/internal/infrastructure/redis"
	"github.com/fastygo/apiresponse/internal/infrastructure/snapshot"
	"github.com/fastygo/apiresponse/internal/registry"
	"github.com/fastygo/apiresponse/internal/services/lifecycle"
	"github.com/fastygo/apiresponse/repository"
	pgRepo "github.com/fastygo/apiresponse/repository/postgres"
	redisRepo "github.com/fastygo/apiresponse/repository/redis"
)

// BuildResponder creates the registry, fills it from every configured
// catalog source and returns the builder bound to it. Connections opened on
// the way are registered with manager.
func BuildResponder(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (*builder.Builder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg, err := registry.New(cfg.Response.MaxCode)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	timeout := cfg.Catalog.LoadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var sources []repository.CatalogSource
	if cfg.Catalog.FromPostgres {
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			logger.Warn("postgres migrations failed", zap.Error(err))
			sources = append(sources, unavailable{name: "postgres", err: fmt.Errorf("migrations: %w", err)})
		} else if pool, err := pgInfra.NewPool(loadCtx, cfg.Database, logger); err != nil {
			logger.Warn("postgres catalog source unavailable", zap.Error(err))
			sources = append(sources, unavailable{name: "postgres", err: err})
		} else {
			manager.Register("postgres", func(context.Context) error {
				pool.Close()
				return nil
			})
			sources = append(sources, pgRepo.NewApiCodeRepository(pool))
		}
	}
	if cfg.Catalog.FromRedis {
		if client, err := redisInfra.NewClient(loadCtx, cfg.Redis); err != nil {
			logger.Warn("redis catalog source unavailable", zap.Error(err))
			sources = append(sources, unavailable{name: "redis", err: err})
		} else {
			manager.Register("redis", func(context.Context) error {
				return client.Close()
			})
			sources = append(sources, redisRepo.NewApiCodeRepository(client, cfg.Catalog.RedisKey))
		}
	}

	var snap catalog.SnapshotStore
	if len(sources) > 0 {
		store, err := snapshot.Open(cfg.Catalog.SnapshotPath, "catalog")
		if err != nil {
			logger.Warn("catalog snapshot unavailable", zap.Error(err))
		} else {
			manager.Register("snapshot", func(context.Context) error {
				return store.Close()
			})
			snap = store
		}
	}

	loader := catalog.NewLoader(snap, logger, sources...)
	if err := loader.Populate(loadCtx, reg, cfg.Response.Codes); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	return builder.New(reg, builder.Settings{
		EncodingOptions:  cfg.Response.EncodingOptions,
		DataAlwaysObject: cfg.Response.DataAlwaysObject,
	}), nil
}

// unavailable stands in for a source that could not be reached so the loader
// falls back to the snapshot.
type unavailable struct {
	name string
	err  error
}

func (u unavailable) Name() string { return u.name }

func (u unavailable) LoadCodes(context.Context) (map[domain.ApiCode]string, error) {
	return nil, u.err
}
