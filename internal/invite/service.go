package invite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ajedrez-online/internal/game"
	"ajedrez-online/internal/obslog"
)

// Service implements the invitation lifecycle and the game history on
// top of a Store.
type Service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{store: store, ttl: ttl}
}

// CreateGame registers a new private game and returns its invitation.
// An empty email produces an open invite anyone can join.
func (s *Service) CreateGame(ctx context.Context, owner string, color game.Color, email string) (*Invitation, error) {
	if !color.Valid() {
		color = game.White
	}
	now := time.Now().UTC()
	inv := &Invitation{
		ID:           uuid.NewString(),
		GameID:       uuid.NewString()[:8],
		Owner:        owner,
		OwnerColor:   color,
		InvitedEmail: strings.TrimSpace(email),
		Status:       InvitePending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	obslog.L().Info("partida_creada",
		zap.String("game_id", inv.GameID),
		zap.String("owner", owner),
		zap.String("owner_color", string(color)))
	return inv, nil
}

// Join accepts an invitation and opens the game. The joiner plays the
// color opposite to the owner's.
func (s *Service) Join(ctx context.Context, invitationID, username string) (*Invitation, game.Color, error) {
	inv, err := s.store.InvitationByID(ctx, invitationID)
	if err != nil {
		return nil, "", err
	}
	if inv.Status != InvitePending || inv.Expired(time.Now()) {
		return nil, "", ErrInvitacionNoEncontrada
	}
	if inv.Owner == username {
		return nil, "", ErrPropia
	}

	if err := s.store.SetInvitationStatus(ctx, inv.ID, InviteAccepted, username); err != nil {
		return nil, "", err
	}
	g := &GameRecord{
		GameID:    inv.GameID,
		Owner:     inv.Owner,
		Opponent:  username,
		Status:    GamePlaying,
		Result:    ResultInProgress,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateGame(ctx, g); err != nil {
		return nil, "", err
	}
	inv.Status = InviteAccepted
	inv.AcceptedBy = username
	obslog.L().Info("jugador_unido",
		zap.String("game_id", inv.GameID),
		zap.String("owner", inv.Owner),
		zap.String("opponent", username))
	return inv, inv.OwnerColor.Opposite(), nil
}

// Decline marks a pending invitation as expired. Directed invitations
// can only be declined by the invited address; open invites by anyone.
func (s *Service) Decline(ctx context.Context, invitationID, email string) error {
	inv, err := s.store.InvitationByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.Status != InvitePending {
		return ErrInvitacionNoEncontrada
	}
	if inv.InvitedEmail != "" && !strings.EqualFold(inv.InvitedEmail, email) {
		return ErrSinPermiso
	}
	return s.store.SetInvitationStatus(ctx, inv.ID, InviteExpired, "")
}

// Delete removes a game and its invitation. Only the creator may do it,
// and not while an opponent is playing.
func (s *Service) Delete(ctx context.Context, gameID, username string) error {
	inv, err := s.store.InvitationByGameID(ctx, gameID)
	if err != nil {
		return err
	}
	if inv.Owner != username {
		return ErrSoloCreador
	}
	g, err := s.store.GameByID(ctx, gameID)
	if err == nil && g.Opponent != "" && g.Status == GamePlaying {
		return ErrEnCursoConOponente
	}
	if err != nil && err != ErrPartidaNoEncontrada {
		return err
	}
	if err := s.store.DeleteByGameID(ctx, gameID); err != nil {
		return err
	}
	obslog.L().Info("partida_eliminada", zap.String("game_id", gameID), zap.String("owner", username))
	return nil
}

// Overview returns the joinable invitations and the active games for a
// user, the data behind the private-games screen.
func (s *Service) Overview(ctx context.Context, username, email string) ([]Invitation, []GameRecord, error) {
	pending, err := s.store.PendingFor(ctx, username, email)
	if err != nil {
		return nil, nil, err
	}
	active, err := s.store.ActiveGamesFor(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	return pending, active, nil
}

// Mine returns everything a user created: their invitations and their
// games, newest first.
func (s *Service) Mine(ctx context.Context, owner string) ([]Invitation, []GameRecord, error) {
	invs, err := s.store.InvitationsByOwner(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	games, err := s.store.GamesByOwner(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	return invs, games, nil
}

// Finish records the outcome of a completed game under the reporting
// player. Ganador carries the winning color; estado "empate" records a
// draw.
func (s *Service) Finish(ctx context.Context, username string, ganador game.Color, estado string) (*GameRecord, error) {
	now := time.Now().UTC()
	result := ResultDefeat
	winner := ""
	if estado == "empate" {
		result = ResultDraw
	} else {
		if ganador == game.White {
			result = ResultVictory
		}
		winner = username
	}
	g := &GameRecord{
		GameID:     uuid.NewString()[:8],
		Owner:      username,
		Status:     GameFinished,
		Result:     result,
		Winner:     winner,
		CreatedAt:  now,
		FinishedAt: &now,
	}
	if err := s.store.CreateGame(ctx, g); err != nil {
		return nil, err
	}
	obslog.L().Info("partida_finalizada",
		zap.String("game_id", g.GameID),
		zap.String("owner", username),
		zap.String("result", string(result)))
	return g, nil
}

// History returns a user's games plus their win/loss/draw totals.
func (s *Service) History(ctx context.Context, username string) ([]GameRecord, Stats, error) {
	games, err := s.store.GamesForUser(ctx, username)
	if err != nil {
		return nil, Stats{}, err
	}
	var st Stats
	for _, g := range games {
		switch g.Result {
		case ResultVictory:
			st.Wins++
		case ResultDefeat:
			st.Losses++
		case ResultDraw:
			st.Draws++
		}
	}
	return games, st, nil
}

// ExpireOverdue sweeps pending invitations past their deadline.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	return s.store.ExpireOverdue(ctx, time.Now())
}
