package invite

import (
	"context"
	"testing"
	"time"

	"ajedrez-online/internal/game"
)

func newTestService() *Service {
	return NewService(NewMemoryStore(), 24*time.Hour)
}

func TestCreateAndJoin(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	inv, err := s.CreateGame(ctx, "ana", game.White, "eva@example.com")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if inv.Status != InvitePending || len(inv.GameID) != 8 {
		t.Fatalf("invitation: %+v", inv)
	}
	if !inv.ExpiresAt.After(inv.CreatedAt.Add(23 * time.Hour)) {
		t.Fatalf("expiry too close: %v", inv.ExpiresAt)
	}

	joined, color, err := s.Join(ctx, inv.ID, "eva")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if color != game.Black {
		t.Fatalf("joiner color = %s, want negra", color)
	}
	if joined.Status != InviteAccepted || joined.AcceptedBy != "eva" {
		t.Fatalf("joined invitation: %+v", joined)
	}

	// Accepting twice fails.
	if _, _, err := s.Join(ctx, inv.ID, "otro"); err != ErrInvitacionNoEncontrada {
		t.Fatalf("second join: err = %v", err)
	}

	// The game shows up for both players.
	for _, u := range []string{"ana", "eva"} {
		active, err := s.store.ActiveGamesFor(ctx, u)
		if err != nil || len(active) != 1 || active[0].GameID != inv.GameID {
			t.Fatalf("active games for %s: %v, %v", u, active, err)
		}
	}
}

func TestJoinOwnGame(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	inv, _ := s.CreateGame(ctx, "ana", game.Black, "")
	if _, _, err := s.Join(ctx, inv.ID, "ana"); err != ErrPropia {
		t.Fatalf("err = %v, want ErrPropia", err)
	}
}

func TestDecline(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	inv, _ := s.CreateGame(ctx, "ana", game.White, "eva@example.com")

	if err := s.Decline(ctx, inv.ID, "otro@example.com"); err != ErrSinPermiso {
		t.Fatalf("foreign decline: err = %v", err)
	}
	if err := s.Decline(ctx, inv.ID, "EVA@example.com"); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if _, _, err := s.Join(ctx, inv.ID, "eva"); err != ErrInvitacionNoEncontrada {
		t.Fatalf("join after decline: err = %v", err)
	}
}

func TestOverviewFiltersInvitations(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	s.CreateGame(ctx, "ana", game.White, "eva@example.com")
	s.CreateGame(ctx, "ana", game.White, "") // open invite
	s.CreateGame(ctx, "eva", game.White, "") // eva's own open invite

	pending, active, err := s.Overview(ctx, "eva", "eva@example.com")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2 (directed + foreign open)", len(pending))
	}
	if len(active) != 0 {
		t.Fatalf("active = %d, want 0", len(active))
	}
}

func TestDeleteRules(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	if err := s.Delete(ctx, "no-existe", "ana"); err != ErrPartidaNoEncontrada {
		t.Fatalf("missing game: err = %v", err)
	}

	inv, _ := s.CreateGame(ctx, "ana", game.White, "")
	if err := s.Delete(ctx, inv.GameID, "eva"); err != ErrSoloCreador {
		t.Fatalf("non-creator delete: err = %v", err)
	}

	// Waiting game, no opponent yet: deletable.
	if err := s.Delete(ctx, inv.GameID, "ana"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Once an opponent joined, deletion is blocked.
	inv2, _ := s.CreateGame(ctx, "ana", game.White, "")
	if _, _, err := s.Join(ctx, inv2.ID, "eva"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := s.Delete(ctx, inv2.GameID, "ana"); err != ErrEnCursoConOponente {
		t.Fatalf("in-progress delete: err = %v", err)
	}
}

func TestFinishAndHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	cases := []struct {
		ganador game.Color
		estado  string
		want    Result
	}{
		{game.White, "blancas-ganan", ResultVictory},
		{game.Black, "negras-ganan", ResultDefeat},
		{"", "empate", ResultDraw},
	}
	for _, c := range cases {
		g, err := s.Finish(ctx, "ana", c.ganador, c.estado)
		if err != nil {
			t.Fatalf("Finish(%s): %v", c.estado, err)
		}
		if g.Result != c.want || g.Status != GameFinished || g.FinishedAt == nil {
			t.Fatalf("Finish(%s) = %+v, want result %s", c.estado, g, c.want)
		}
		if c.want == ResultDraw && g.Winner != "" {
			t.Fatalf("draw has a winner: %+v", g)
		}
	}

	games, stats, err := s.History(ctx, "ana")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("games = %d", len(games))
	}
	if stats != (Stats{Wins: 1, Losses: 1, Draws: 1}) {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestExpireOverdue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := NewService(store, time.Nanosecond)
	inv, _ := s.CreateGame(ctx, "ana", game.White, "")

	time.Sleep(time.Millisecond)
	n, err := s.ExpireOverdue(ctx)
	if err != nil || n != 1 {
		t.Fatalf("ExpireOverdue = %d, %v", n, err)
	}
	got, _ := store.InvitationByID(ctx, inv.ID)
	if got.Status != InviteExpired {
		t.Fatalf("status = %s", got.Status)
	}
}
