package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/repository"
	"github.com/spec-kit/hr-service/internal/repository/memory"
	"github.com/spec-kit/hr-service/internal/repository/redisstore"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend is an opened store plus the connections behind it.
type Backend struct {
	Name    string
	Store   repository.Store
	Checks  map[string]Pinger
	closers []func()
}

// Close releases every connection the backend opened.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// OpenBackend connects the storage selected by cfg.Store.Backend.
func OpenBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backend, error) {
	backend := &Backend{Name: cfg.Store.Backend, Checks: map[string]Pinger{}}

	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		backend.Store = memory.NewStore()

	case config.StoreBackendPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		backend.closers = append(backend.closers, pg.Close)
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				backend.Close()
				return nil, err
			}
		}
		pool := pg.PoolHandle()
		backend.Store = repository.Store{
			Users:      repository.NewUserRepository(pool),
			Leaves:     repository.NewLeaveRepository(pool),
			Timesheets: repository.NewTimesheetRepository(pool),
		}
		backend.Checks["postgres"] = pg

	case config.StoreBackendRedis:
		rds := NewRedis(cfg.Redis, logger)
		backend.closers = append(backend.closers, rds.Close)
		backend.Store = redisstore.NewStore(rds.Client, rds.Prefix())
		backend.Checks["redis"] = rds

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	logger.Info("store opened", zap.String("backend", backend.Name))
	return backend, nil
}
