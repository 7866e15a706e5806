package match

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"ajedrez-online/internal/game"
)

func newRedisManager(t *testing.T) *Manager {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	store, err := NewRedisStore(fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	return NewManager(store)
}

func forEachStore(t *testing.T, fn func(t *testing.T, m *Manager)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewManager(NewMemoryStore()))
	})
	t.Run("redis", func(t *testing.T) {
		fn(t, newRedisManager(t))
	})
}

func mustMove(t *testing.T, m *Manager, partida, pieza, color, inicial, final string) *MoveResult {
	t.Helper()
	res, err := m.ValidateMove(context.Background(), partida, pieza, color, inicial, final)
	if err != nil {
		t.Fatalf("ValidateMove(%s %s %s->%s): %v", color, pieza, inicial, final, err)
	}
	return res
}

func TestOpeningPawnMove(t *testing.T) {
	forEachStore(t, func(t *testing.T, m *Manager) {
		res := mustMove(t, m, "", "peon", "blanca", "e2", "e4")
		if !res.Valido {
			t.Fatalf("e2e4 rejected: %s", res.Rechazo)
		}
		if res.Turno != game.Black {
			t.Fatalf("turn after e2e4 = %s, want negra", res.Turno)
		}
		if res.Contador != 1 {
			t.Fatalf("counter = %d, want 1", res.Contador)
		}
		mv := res.Movimiento
		if mv == nil || mv.ID != 1 || mv.Pieza != game.Pawn || mv.Color != game.White ||
			mv.Inicial != "e2" || mv.Final != "e4" {
			t.Fatalf("unexpected move record: %+v", mv)
		}
	})
}

func TestTurnAlternation(t *testing.T) {
	forEachStore(t, func(t *testing.T, m *Manager) {
		moves := []struct{ color, inicial, final string }{
			{"blanca", "e2", "e4"},
			{"negra", "e7", "e5"},
			{"blanca", "d2", "d4"},
			{"negra", "d7", "d5"},
		}
		for i, mv := range moves {
			res := mustMove(t, m, "", "peon", mv.color, mv.inicial, mv.final)
			if !res.Valido {
				t.Fatalf("move %d rejected: %s", i, res.Rechazo)
			}
			if res.Contador != i+1 {
				t.Fatalf("counter after move %d = %d", i, res.Contador)
			}
		}
		st, err := m.Snapshot(context.Background(), "")
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if st.Turno != game.White { // even number of accepted moves
			t.Fatalf("turn after 4 moves = %s, want blanca", st.Turno)
		}
		for i, mv := range st.Historial {
			if mv.ID != i+1 {
				t.Fatalf("history id at %d = %d", i, mv.ID)
			}
		}
	})
}

func TestRejectionsLeaveStateUntouched(t *testing.T) {
	forEachStore(t, func(t *testing.T, m *Manager) {
		cases := []struct {
			name                         string
			pieza, color, inicial, final string
			want                         Rechazo
		}{
			{"incomplete", "", "blanca", "e2", "e4", RechazoDatosIncompletos},
			{"wrong turn", "peon", "negra", "e7", "e5", RechazoNoEsTuTurno},
			{"unknown piece", "dragon", "blanca", "e2", "e4", RechazoPiezaInvalida},
			{"illegal geometry", "peon", "blanca", "e2", "f3", RechazoMovimiento},
			{"bad coordinate", "peon", "blanca", "e9", "e4", RechazoMovimiento},
		}
		for _, c := range cases {
			res := mustMove(t, m, "", c.pieza, c.color, c.inicial, c.final)
			if res.Valido || res.Rechazo != c.want {
				t.Fatalf("%s: valido=%v rechazo=%s, want %s", c.name, res.Valido, res.Rechazo, c.want)
			}
		}
		st, _ := m.Snapshot(context.Background(), "")
		if st.Contador != 0 || st.Turno != game.White || len(st.Historial) != 0 {
			t.Fatalf("state mutated by rejections: %+v", st)
		}
	})
}

func TestResignation(t *testing.T) {
	forEachStore(t, func(t *testing.T, m *Manager) {
		ctx := context.Background()

		// Only the side to move may resign.
		res, err := m.Resign(ctx, "", "negra")
		if err != nil {
			t.Fatalf("Resign: %v", err)
		}
		if res.Success || res.Rechazo != RechazoRendirseFueraTurno {
			t.Fatalf("off-turn resignation accepted: %+v", res)
		}

		res, err = m.Resign(ctx, "", "blanca")
		if err != nil {
			t.Fatalf("Resign: %v", err)
		}
		if !res.Success || res.Ganador != "negras" || res.Estado != EstadoNegrasGanan {
			t.Fatalf("resignation result: %+v", res)
		}

		// No moves after the game ended.
		mv := mustMove(t, m, "", "peon", "negra", "e7", "e5")
		if mv.Valido || mv.Rechazo != RechazoPartidaTerminada {
			t.Fatalf("move accepted after resignation: %+v", mv)
		}

		// Resigning twice is rejected too.
		res, _ = m.Resign(ctx, "", "negra")
		if res.Success || res.Rechazo != RechazoPartidaTerminada {
			t.Fatalf("second resignation: %+v", res)
		}
	})
}

func TestResetIsIdempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, m *Manager) {
		ctx := context.Background()
		mustMove(t, m, "", "peon", "blanca", "e2", "e4")
		if _, err := m.Resign(ctx, "", "negra"); err != nil {
			t.Fatalf("Resign: %v", err)
		}

		for i := 0; i < 2; i++ {
			st, err := m.Reset(ctx, "")
			if err != nil {
				t.Fatalf("Reset #%d: %v", i, err)
			}
			if st.Turno != game.White || st.Estado != EstadoEnCurso ||
				st.Contador != 0 || len(st.Historial) != 0 || st.Ultimo != nil {
				t.Fatalf("Reset #%d state: %+v", i, st)
			}
		}
	})
}

func TestPollReturnsEveryMissedMove(t *testing.T) {
	forEachStore(t, func(t *testing.T, m *Manager) {
		ctx := context.Background()
		mustMove(t, m, "", "peon", "blanca", "e2", "e4")
		mustMove(t, m, "", "peon", "negra", "e7", "e5")
		mustMove(t, m, "", "caballo", "blanca", "g1", "f3")

		res, err := m.Poll(ctx, "", 1)
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if !res.HayNuevoMovimiento || res.Contador != 3 {
			t.Fatalf("poll: %+v", res)
		}
		if res.Movimiento == nil || res.Movimiento.ID != 3 {
			t.Fatalf("latest move: %+v", res.Movimiento)
		}
		if len(res.Movimientos) != 2 || res.Movimientos[0].ID != 2 || res.Movimientos[1].ID != 3 {
			t.Fatalf("missed moves: %+v", res.Movimientos)
		}

		// Up to date: nothing new, reconciliation fields still present.
		res, err = m.Poll(ctx, "", 3)
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if res.HayNuevoMovimiento || len(res.Movimientos) != 0 || res.Turno != game.Black {
			t.Fatalf("up-to-date poll: %+v", res)
		}
	})
}

func TestMatchesAreIndependent(t *testing.T) {
	forEachStore(t, func(t *testing.T, m *Manager) {
		ctx := context.Background()
		mustMove(t, m, "uno", "peon", "blanca", "e2", "e4")

		st, err := m.Snapshot(ctx, "dos")
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if st.Contador != 0 || st.Turno != game.White {
			t.Fatalf("match dos saw match uno's move: %+v", st)
		}

		res := mustMove(t, m, "dos", "peon", "blanca", "a2", "a3")
		if !res.Valido {
			t.Fatalf("independent match move rejected: %s", res.Rechazo)
		}
	})
}
