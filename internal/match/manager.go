package match

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"ajedrez-online/internal/game"
	"ajedrez-online/internal/obslog"
)

// DefaultPartida is the match key used when a request carries none, which
// keeps the single-board web client working unchanged.
const DefaultPartida = "principal"

// NormalizePartida trims the client-supplied match id, falling back to the
// default key.
func NormalizePartida(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultPartida
	}
	return id
}

// Manager is the server-side move authority: it owns turn order, the move
// counter and the append-only move log for every live match in the store.
// It validates geometry and turn only; relocating piece representations is
// the client's responsibility.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager { return &Manager{store: store} }

func (m *Manager) Close() error { return m.store.Close() }

// ValidateMove checks a proposed move and, when legal, flips the turn,
// bumps the counter and appends the move to the log. Every rejection
// leaves the stored state untouched.
func (m *Manager) ValidateMove(ctx context.Context, partida, pieza, color, inicial, final string) (*MoveResult, error) {
	partida = NormalizePartida(partida)
	res := &MoveResult{}

	if pieza == "" || color == "" || inicial == "" || final == "" {
		res.Rechazo = RechazoDatosIncompletos
		return res, nil
	}

	_, err := m.store.Update(ctx, partida, func(s *State) (bool, error) {
		res.Turno = s.Turno
		res.Contador = s.Contador

		if s.Estado.Terminal() {
			res.Rechazo = RechazoPartidaTerminada
			return false, nil
		}
		c := game.Color(color)
		if c != s.Turno {
			res.Rechazo = RechazoNoEsTuTurno
			return false, nil
		}
		pt := game.PieceType(pieza)
		if !pt.Valid() {
			res.Rechazo = RechazoPiezaInvalida
			return false, nil
		}
		x0, y0, ok0 := game.ParseCoord(inicial)
		x1, y1, ok1 := game.ParseCoord(final)
		if !ok0 || !ok1 {
			res.Rechazo = RechazoMovimiento
			return false, nil
		}
		reachable, rerr := game.Reaches(pt, x0, y0, x1, y1, c)
		if rerr != nil {
			res.Rechazo = RechazoPiezaInvalida
			return false, nil
		}
		if !reachable {
			res.Rechazo = RechazoMovimiento
			return false, nil
		}

		now := time.Now()
		s.Turno = c.Opposite()
		s.Contador++
		mv := Move{
			ID:        s.Contador,
			Pieza:     pt,
			Color:     c,
			Inicial:   inicial,
			Final:     final,
			Timestamp: now.UnixMilli(),
		}
		s.Historial = append(s.Historial, mv)
		s.Ultimo = &mv
		s.ActualizadoEn = now

		res.Valido = true
		res.Movimiento = &mv
		res.Turno = s.Turno
		res.Contador = s.Contador
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if res.Valido {
		obslog.L().Info("movimiento_aceptado",
			zap.String("partida", partida),
			zap.String("pieza", pieza),
			zap.String("color", color),
			zap.String("inicial", inicial),
			zap.String("final", final),
			zap.Int("contador", res.Contador),
			zap.String("nuevo_turno", string(res.Turno)),
		)
	}
	return res, nil
}

// Resign forfeits the match in favor of the opposite color. Only the side
// whose turn it is may resign, and only while the game is in progress.
func (m *Manager) Resign(ctx context.Context, partida, jugador string) (*ResignResult, error) {
	partida = NormalizePartida(partida)
	res := &ResignResult{}

	if strings.TrimSpace(jugador) == "" {
		res.Rechazo = RechazoDatosIncompletos
		return res, nil
	}

	_, err := m.store.Update(ctx, partida, func(s *State) (bool, error) {
		res.Estado = s.Estado
		if s.Estado.Terminal() {
			res.Rechazo = RechazoPartidaTerminada
			return false, nil
		}
		c := game.Color(jugador)
		if c != s.Turno {
			res.Rechazo = RechazoRendirseFueraTurno
			return false, nil
		}
		winner := c.Opposite()
		s.Estado = EstadoGanan(winner)
		s.ActualizadoEn = time.Now()

		res.Success = true
		res.Jugador = c
		res.Ganador = winner.Plural()
		res.Estado = s.Estado
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if res.Success {
		obslog.L().Info("rendicion",
			zap.String("partida", partida),
			zap.String("jugador", jugador),
			zap.String("ganador", res.Ganador),
		)
	}
	return res, nil
}

// Reset replaces the match with a fresh starting state. It always
// succeeds and is idempotent.
func (m *Manager) Reset(ctx context.Context, partida string) (*State, error) {
	partida = NormalizePartida(partida)
	st, err := m.store.Update(ctx, partida, func(s *State) (bool, error) {
		*s = *NewState()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	obslog.L().Info("nueva_partida", zap.String("partida", partida))
	return st, nil
}

// Poll answers the client's "anything newer than my counter?" query. The
// reply carries both the latest move and the full ordered slice of moves
// the client has not seen, so a poller that skipped a tick can replay
// every intermediate move instead of jumping to the latest board.
func (m *Manager) Poll(ctx context.Context, partida string, contadorCliente int) (*PollResult, error) {
	st, err := m.store.Load(ctx, NormalizePartida(partida))
	if err != nil {
		return nil, err
	}
	res := &PollResult{
		Turno:    st.Turno,
		Contador: st.Contador,
		Estado:   st.Estado,
	}
	if contadorCliente < st.Contador && st.Ultimo != nil {
		res.HayNuevoMovimiento = true
		res.Movimiento = st.Ultimo
		for _, mv := range st.Historial {
			if mv.ID > contadorCliente {
				res.Movimientos = append(res.Movimientos, mv)
			}
		}
	}
	return res, nil
}

// Snapshot returns the caller's copy of the current state.
func (m *Manager) Snapshot(ctx context.Context, partida string) (*State, error) {
	return m.store.Load(ctx, NormalizePartida(partida))
}
