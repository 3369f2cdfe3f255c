package postgis

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // Registers the "pgx" database/sql driver for migrations.
)

var (
	ErrPostGISMissing = errors.New("PostGIS functions are not available")
	ErrInvalidPattern = errors.New("invalid landmark pattern")
)

type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

//go:embed migrations/*.sql
var migrationsFS embed.FS

func New(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	if err := migrateUp(ctx, dsn, log); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func migrateUp(ctx context.Context, dsn string, log *slog.Logger) (err error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open DB: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	dbInstance, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("create DB instance: %w", err)
	}

	srcInstance, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create source instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcInstance, "pgx5", dbInstance)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err = m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", classify(err))
		}

		log.DebugContext(ctx, "No migrations to apply")

		return nil
	}

	log.InfoContext(ctx, "DB is migrated")

	return nil
}

// classify maps the Postgres error codes callers can act on to sentinel
// errors and leaves everything else untouched.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UndefinedFunction, pgerrcode.UndefinedFile, pgerrcode.UndefinedObject:
		return fmt.Errorf("%w: %w", ErrPostGISMissing, err)
	case pgerrcode.InvalidRegularExpression:
		return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	default:
		return err
	}
}
