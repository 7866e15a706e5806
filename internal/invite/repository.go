package invite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository persists invitations and game records in PostgreSQL.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the invitations and games tables when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS invitations (
			invitation_id varchar(64)  PRIMARY KEY,
			game_id       varchar(16)  NOT NULL,
			owner         varchar(64)  NOT NULL,
			owner_color   varchar(8)   NOT NULL,
			invited_email varchar(256),
			status        varchar(16)  NOT NULL DEFAULT 'pending',
			accepted_by   varchar(64),
			created_at    timestamptz  NOT NULL DEFAULT now(),
			expires_at    timestamptz  NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS invitations_game_id ON invitations (game_id)`,
		`CREATE TABLE IF NOT EXISTS games (
			game_id     varchar(16)  PRIMARY KEY,
			owner       varchar(64)  NOT NULL,
			opponent    varchar(64),
			status      varchar(16)  NOT NULL,
			result      varchar(16)  NOT NULL DEFAULT 'in-progress',
			winner      varchar(64),
			created_at  timestamptz  NOT NULL DEFAULT now(),
			finished_at timestamptz
		)`,
	}
	for _, q := range stmts {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

const invitationCols = `invitation_id, game_id, owner, owner_color,
	coalesce(invited_email, ''), status, coalesce(accepted_by, ''), created_at, expires_at`

func scanInvitation(row interface{ Scan(...any) error }) (*Invitation, error) {
	inv := &Invitation{}
	err := row.Scan(&inv.ID, &inv.GameID, &inv.Owner, &inv.OwnerColor,
		&inv.InvitedEmail, &inv.Status, &inv.AcceptedBy, &inv.CreatedAt, &inv.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *Repository) CreateInvitation(ctx context.Context, inv *Invitation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (invitation_id, game_id, owner, owner_color,
			invited_email, status, created_at, expires_at)
		VALUES ($1,$2,$3,$4, nullif($5,''), $6,$7,$8)`,
		inv.ID, inv.GameID, inv.Owner, inv.OwnerColor,
		inv.InvitedEmail, inv.Status, inv.CreatedAt, inv.ExpiresAt)
	return err
}

func (r *Repository) InvitationByID(ctx context.Context, id string) (*Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE invitation_id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvitacionNoEncontrada
	}
	return inv, err
}

func (r *Repository) InvitationByGameID(ctx context.Context, gameID string) (*Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE game_id = $1`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartidaNoEncontrada
	}
	return inv, err
}

func (r *Repository) SetInvitationStatus(ctx context.Context, id string, status InviteStatus, acceptedBy string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET status = $2, accepted_by = nullif($3,'') WHERE invitation_id = $1`,
		id, status, acceptedBy)
	return err
}

func (r *Repository) InvitationsByOwner(ctx context.Context, owner string) ([]Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationCols+` FROM invitations WHERE owner = $1 ORDER BY created_at DESC`,
		owner)
	if err != nil {
		return nil, err
	}
	return collectInvitations(rows)
}

func (r *Repository) PendingFor(ctx context.Context, username, email string) ([]Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationCols+` FROM invitations
		WHERE status = 'pending' AND expires_at > now()
		  AND (lower(invited_email) = lower($2) OR (invited_email IS NULL AND owner <> $1))
		ORDER BY created_at DESC`,
		username, email)
	if err != nil {
		return nil, err
	}
	return collectInvitations(rows)
}

func (r *Repository) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET status = 'expired' WHERE status = 'pending' AND expires_at <= $1`,
		now)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func collectInvitations(rows *sql.Rows) ([]Invitation, error) {
	defer rows.Close()
	var out []Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

const gameCols = `game_id, owner, coalesce(opponent, ''), status, result,
	coalesce(winner, ''), created_at, finished_at`

func scanGame(row interface{ Scan(...any) error }) (*GameRecord, error) {
	g := &GameRecord{}
	var finished sql.NullTime
	err := row.Scan(&g.GameID, &g.Owner, &g.Opponent, &g.Status, &g.Result,
		&g.Winner, &g.CreatedAt, &finished)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		t := finished.Time
		g.FinishedAt = &t
	}
	return g, nil
}

func (r *Repository) CreateGame(ctx context.Context, g *GameRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO games (game_id, owner, opponent, status, result, winner, created_at, finished_at)
		VALUES ($1,$2, nullif($3,''), $4,$5, nullif($6,''), $7,$8)`,
		g.GameID, g.Owner, g.Opponent, g.Status, g.Result, g.Winner, g.CreatedAt, g.FinishedAt)
	return err
}

func (r *Repository) GameByID(ctx context.Context, gameID string) (*GameRecord, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx,
		`SELECT `+gameCols+` FROM games WHERE game_id = $1`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartidaNoEncontrada
	}
	return g, err
}

func (r *Repository) DeleteByGameID(ctx context.Context, gameID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE game_id = $1`, gameID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	return err
}

func (r *Repository) GamesByOwner(ctx context.Context, owner string) ([]GameRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameCols+` FROM games WHERE owner = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func (r *Repository) GamesForUser(ctx context.Context, username string) ([]GameRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameCols+` FROM games WHERE owner = $1 OR opponent = $1
		ORDER BY finished_at DESC NULLS LAST, created_at DESC`, username)
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func (r *Repository) ActiveGamesFor(ctx context.Context, username string) ([]GameRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameCols+` FROM games
		WHERE status = 'playing' AND (owner = $1 OR opponent = $1)
		ORDER BY created_at DESC`, username)
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func collectGames(rows *sql.Rows) ([]GameRecord, error) {
	defer rows.Close()
	var out []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}
