package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Repository persists users in PostgreSQL.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS users (
		username   varchar(64)  PRIMARY KEY,
		email      varchar(256) NOT NULL UNIQUE,
		hash       varchar(256) NOT NULL,
		created_at timestamptz  NOT NULL DEFAULT now()
	)`)
	return err
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, hash, created_at) VALUES ($1,$2,$3,$4)`,
		u.Username, u.Email, u.Hash, u.CreatedAt)
	var pqe *pq.Error
	if errors.As(err, &pqe) && pqe.Code == "23505" { // unique_violation
		return ErrUsuarioExiste
	}
	return err
}

func (r *Repository) ByUsername(ctx context.Context, username string) (*User, error) {
	u := &User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT username, email, hash, created_at FROM users WHERE username = $1`,
		username).Scan(&u.Username, &u.Email, &u.Hash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// EmailTaken reports whether email belongs to a user other than username.
func (r *Repository) EmailTaken(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE lower(email) = lower($1) AND username <> $2`,
		strings.TrimSpace(email), username).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateProfile rewrites the email and, when hash is non-empty, the
// password hash of an existing user.
func (r *Repository) UpdateProfile(ctx context.Context, username, email, hash string) error {
	var err error
	if hash != "" {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET email = $2, hash = $3 WHERE username = $1`,
			username, email, hash)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET email = $2 WHERE username = $1`,
			username, email)
	}
	var pqe *pq.Error
	if errors.As(err, &pqe) && pqe.Code == "23505" {
		return ErrEmailEnUso
	}
	return err
}
