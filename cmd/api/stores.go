package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/persistence"
	"github.com/spec-kit/complaint-service/internal/repository"
)

type stores struct {
	users      repository.UserRepository
	complaints repository.ComplaintRepository
	history    repository.ComplaintHistoryRepository
	check      handlers.DependencyCheck
	close      func()
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := persistence.NewSQLite(cfg.SQLite, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := repository.MigrateGorm(db.DB); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return &stores{
			users:      repository.NewGormUserRepository(db.DB),
			complaints: repository.NewGormComplaintRepository(db.DB),
			history:    repository.NewGormComplaintHistoryRepository(db.DB),
			check:      handlers.DependencyCheck{Name: "sqlite", Pinger: db},
			close:      db.Close,
		}, nil

	default:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		pool := pg.PoolHandle()
		if pool == nil {
			return nil, errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return &stores{
			users:      repository.NewUserRepository(pool),
			complaints: repository.NewComplaintRepository(pool),
			history:    repository.NewComplaintHistoryRepository(pool),
			check:      handlers.DependencyCheck{Name: "postgres", Pinger: pg},
			close:      pg.Close,
		}, nil
	}
}
