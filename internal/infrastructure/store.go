// Package infrastructure picks a storage backend from DATABASE_URL and hands
// back the repositories the usecases need.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/ErlanBelekov/jobs-api/internal/infrastructure/memory"
	"github.com/ErlanBelekov/jobs-api/internal/infrastructure/mongodb"
	"github.com/ErlanBelekov/jobs-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/jobs-api/internal/repository"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"
	BackendMemory   = "memory"
)

type Store struct {
	Users   repository.UserRepository
	Jobs    repository.JobRepository
	Backend string

	ping  func(context.Context) error
	close func(context.Context) error
}

// Ping satisfies health.Pinger.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

// Backend returns which store a database URL selects.
func Backend(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "memory":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

// Open connects, verifies the connection and brings the schema up to date
// (goose migrations for Postgres, indexes for MongoDB) before returning.
func Open(ctx context.Context, databaseURL string, maxConns int, logger *slog.Logger) (*Store, error) {
	backend, err := Backend(databaseURL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendPostgres:
		pool, err := postgres.NewPool(ctx, databaseURL, int32(maxConns))
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("db connected", "backend", backend, "max_conns", maxConns)
		return &Store{
			Users:   postgres.NewUserRepository(pool),
			Jobs:    postgres.NewJobRepository(pool),
			Backend: backend,
			ping:    pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case BackendMongo:
		db, err := mongodb.Connect(ctx, databaseURL, uint64(maxConns))
		if err != nil {
			return nil, err
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			_ = db.Close(context.Background())
			return nil, err
		}
		logger.Info("db connected", "backend", backend, "max_conns", maxConns)
		return &Store{
			Users:   mongodb.NewUserRepository(db),
			Jobs:    mongodb.NewJobRepository(db),
			Backend: backend,
			ping:    db.Ping,
			close:   db.Close,
		}, nil

	default:
		mem := memory.NewStore()
		logger.Warn("using in-memory store; data is lost on restart")
		return &Store{
			Users:   mem.Users(),
			Jobs:    mem.Jobs(),
			Backend: backend,
			ping:    mem.Ping,
			close:   mem.Close,
		}, nil
	}
}
