package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotMigrated is returned when the sessions table does not exist yet.
var ErrNotMigrated = errors.New("session table missing: run migrations")

// PgxStore keeps sessions in the admin_sessions table.
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

func (r *PgxStore) Get(ctx context.Context, id string) (*Session, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "backend_token", "created_at", "expires_at").
		From("admin_sessions").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("expires_at > now()")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var s Session
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Token, &s.CreatedAt, &s.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &s, nil
}

func (r *PgxStore) Save(ctx context.Context, s *Session) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("admin_sessions").
		Columns("id", "backend_token", "created_at", "expires_at").
		Values(s.ID, s.Token, s.CreatedAt, s.ExpiresAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET backend_token = EXCLUDED.backend_token, expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgxStore) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("admin_sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapPgError(err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before now.
func (r *PgxStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("admin_sessions").Where(squirrel.LtOrEq{"expires_at": now}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapPgError(err)
	}
	return tag.RowsAffected(), nil
}

func mapPgError(err error) error {
	var e *pgconn.PgError
	if errors.As(err, &e) && e.Code == pgerrcode.UndefinedTable {
		return ErrNotMigrated
	}
	return fmt.Errorf("session store: %w", err)
}
