package linkcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaeljc/huginn/checkweb"
	"github.com/rafaeljc/huginn/internal/logger"
	"github.com/rafaeljc/huginn/internal/observability"
	"github.com/rafaeljc/huginn/internal/validation"
)

// Compile-time check to verify that Postgres implements CacheStore.
var _ checkweb.CacheStore = (*Postgres)(nil)

// Postgres is a durable CacheStore: revalidation state survives restarts,
// so a checker that runs on a schedule (nightly CI, cron) does not re-probe
// every link from scratch each run.
//
// Like the Redis backend, it degrades rather than fails: unreachable
// database means miss on lookup, dropped write on insert.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates the store and ensures its schema exists.
func NewPostgres(ctx context.Context, db *pgxpool.Pool) (*Postgres, error) {
	validation.AssertNotNil(db, "database pool")

	// One self-contained table; key is the full URL, fragment included.
	schema := `
		CREATE TABLE IF NOT EXISTS link_checks (
			key        text PRIMARY KEY,
			checked_at timestamptz NOT NULL,
			valid      boolean NOT NULL
		)
	`
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create link_checks table: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Lookup fetches the entry row for key. A missing row and an unreachable
// database are both reported as a miss.
func (s *Postgres) Lookup(ctx context.Context, key string) (checkweb.Entry, bool) {
	query := `SELECT checked_at, valid FROM link_checks WHERE key = $1`

	var checkedAt time.Time
	var valid bool
	err := s.db.QueryRow(ctx, query, key).Scan(&checkedAt, &valid)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			observability.CacheBackendErrors.WithLabelValues("postgres", "lookup").Inc()
			logger.FromContext(ctx).Debug("postgres lookup failed, treating as miss",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return checkweb.Entry{}, false
	}

	return checkweb.Entry{CheckedAt: checkedAt, Valid: valid}, true
}

// Insert upserts the entry row for key. The upsert replaces the whole row,
// so racing inserts from concurrent checks resolve to whichever lands last.
func (s *Postgres) Insert(ctx context.Context, key string, e checkweb.Entry) {
	query := `
		INSERT INTO link_checks (key, checked_at, valid)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET checked_at = EXCLUDED.checked_at, valid = EXCLUDED.valid
	`

	if _, err := s.db.Exec(ctx, query, key, e.CheckedAt, e.Valid); err != nil {
		observability.CacheBackendErrors.WithLabelValues("postgres", "insert").Inc()
		logger.FromContext(ctx).Debug("postgres insert dropped",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Prune deletes entries older than the retention window. Eviction is the
// store's own concern; a periodic Prune keeps the table from growing
// without bound.
func (s *Postgres) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	query := `DELETE FROM link_checks WHERE checked_at < $1`

	tag, err := s.db.Exec(ctx, query, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to prune link_checks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Name identifies this component in readiness probes.
func (s *Postgres) Name() string {
	return "postgres"
}

// Check verifies the connection to the database.
func (s *Postgres) Check(ctx context.Context) error {
	return s.db.Ping(ctx)
}
