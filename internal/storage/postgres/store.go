package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/pilot-auth/internal/models"
	"github.com/hongminglow/pilot-auth/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store provides Postgres-backed persistence for users.
type Store struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new Store and runs migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pilot_users (
			id BIGSERIAL PRIMARY KEY,
			account TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			token_version BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE pilot_users ADD COLUMN IF NOT EXISTS token_version BIGINT NOT NULL DEFAULT 0;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS pilot_users_email_unique_idx ON pilot_users (lower(email));`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

const userColumns = `id, account, email, password_hash, token_version, created_at`

// CreateUser inserts a new user row. The insert is skipped, and
// ErrAlreadyExists returned, when the account or email already resolves to
// another user through FindByAccount.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO pilot_users (account, email, password_hash)
		SELECT $1::text, $2::text, $3::text
		WHERE NOT EXISTS (
			SELECT 1 FROM pilot_users
			WHERE account = $1
				OR lower(email) = lower($2)
				OR lower(account) = lower($2)
				OR lower(email) = lower($1)
		)
		RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, user.Account, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, storage.ErrAlreadyExists
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM pilot_users WHERE id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// FindByAccount fetches the user matching the identifier as account or email,
// preferring an account match.
func (s *Store) FindByAccount(ctx context.Context, identifier string) (models.User, error) {
	const query = `
	SELECT ` + userColumns + `
	FROM pilot_users
	WHERE account = $1 OR lower(email) = lower($1)
	ORDER BY (account = $1) DESC, id
	LIMIT 1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, identifier))
}

// RotateTokenVersion increments token_version and returns the new value.
func (s *Store) RotateTokenVersion(ctx context.Context, id int64) (int64, error) {
	const query = `
	UPDATE pilot_users SET token_version = token_version + 1
	WHERE id = $1
	RETURNING token_version;
	`
	var version int64
	if err := s.pool.QueryRow(ctx, query, id).Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}
	return version, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Account, &user.Email, &user.PasswordHash, &user.TokenVersion, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
