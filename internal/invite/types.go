// Package invite manages private-game invitations and the per-user game
// record that backs profiles and statistics.
package invite

import (
	"context"
	"errors"
	"time"

	"ajedrez-online/internal/game"
)

// InviteStatus is the lifecycle of an invitation. Declining marks the
// invitation expired; there is no separate declined state.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteExpired  InviteStatus = "expired"
)

// GameStatus tracks a recorded game.
type GameStatus string

const (
	GamePlaying  GameStatus = "playing"
	GameFinished GameStatus = "finished"
)

// Result is the outcome from the recording player's point of view.
type Result string

const (
	ResultInProgress Result = "in-progress"
	ResultVictory    Result = "victory"
	ResultDefeat     Result = "defeat"
	ResultDraw       Result = "draw"
)

// Invitation is a pending or settled invite to a private game.
type Invitation struct {
	ID           string       `json:"invitationId"`
	GameID       string       `json:"gameId"`
	Owner        string       `json:"owner"`
	OwnerColor   game.Color   `json:"ownerColor"`
	InvitedEmail string       `json:"invitedEmail,omitempty"`
	Status       InviteStatus `json:"status"`
	AcceptedBy   string       `json:"acceptedBy,omitempty"`
	CreatedAt    time.Time    `json:"creadoEn"`
	ExpiresAt    time.Time    `json:"expiraEn"`
}

// Expired reports whether the invitation can no longer be joined.
func (i *Invitation) Expired(now time.Time) bool {
	return i.Status == InviteExpired || now.After(i.ExpiresAt)
}

// GameRecord is one entry in a player's game history.
type GameRecord struct {
	GameID     string     `json:"gameId"`
	Owner      string     `json:"owner"`
	Opponent   string     `json:"opponent,omitempty"`
	Status     GameStatus `json:"status"`
	Result     Result     `json:"result"`
	Winner     string     `json:"winner,omitempty"`
	CreatedAt  time.Time  `json:"creadoEn"`
	FinishedAt *time.Time `json:"finalizadoEn,omitempty"`
}

// Stats are the aggregate results shown on a profile.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

var (
	ErrInvitacionNoEncontrada = errors.New("invitación no encontrada o ya expirada")
	ErrPropia                 = errors.New("no puedes unirte a tu propia partida")
	ErrSinPermiso             = errors.New("no tienes permiso para rechazar esta invitación")
	ErrPartidaNoEncontrada    = errors.New("partida no encontrada")
	ErrSoloCreador            = errors.New("solo el creador puede eliminar la partida")
	ErrEnCursoConOponente     = errors.New("no puedes eliminar una partida en curso con oponente")
)

// Store abstracts invitation and game-record persistence.
type Store interface {
	CreateInvitation(ctx context.Context, inv *Invitation) error
	InvitationByID(ctx context.Context, id string) (*Invitation, error)
	InvitationByGameID(ctx context.Context, gameID string) (*Invitation, error)
	SetInvitationStatus(ctx context.Context, id string, status InviteStatus, acceptedBy string) error
	InvitationsByOwner(ctx context.Context, owner string) ([]Invitation, error)
	// PendingFor lists joinable invitations for a user: addressed to
	// their email, or open invites from other players.
	PendingFor(ctx context.Context, username, email string) ([]Invitation, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)

	CreateGame(ctx context.Context, g *GameRecord) error
	GameByID(ctx context.Context, gameID string) (*GameRecord, error)
	DeleteByGameID(ctx context.Context, gameID string) error
	GamesByOwner(ctx context.Context, owner string) ([]GameRecord, error)
	// GamesForUser lists games where the user is owner or opponent.
	GamesForUser(ctx context.Context, username string) ([]GameRecord, error)
	// ActiveGamesFor lists in-progress games where the user plays.
	ActiveGamesFor(ctx context.Context, username string) ([]GameRecord, error)
}
