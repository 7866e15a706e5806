package match

import (
	"time"

	"ajedrez-online/internal/game"
)

// Estado is the lifecycle state of a live match, wire-encoded the way the
// web client expects it.
type Estado string

const (
	EstadoEnCurso      Estado = "en-curso"
	EstadoBlancasGanan Estado = "blancas-ganan"
	EstadoNegrasGanan  Estado = "negras-ganan"
	EstadoEmpate       Estado = "empate"
)

// Terminal reports whether no further moves are accepted.
func (e Estado) Terminal() bool { return e != EstadoEnCurso }

// EstadoGanan returns the game-over state in which the given color wins.
func EstadoGanan(c game.Color) Estado {
	if c == game.White {
		return EstadoBlancasGanan
	}
	return EstadoNegrasGanan
}

// Move is one accepted move. ID equals the move counter at acceptance;
// Timestamp is epoch milliseconds.
type Move struct {
	ID        int            `json:"id"`
	Pieza     game.PieceType `json:"pieza"`
	Color     game.Color     `json:"color"`
	Inicial   string         `json:"inicial"`
	Final     string         `json:"final"`
	Timestamp int64          `json:"timestamp"`
}

// State is the authoritative live state of one match, stored as JSON under
// its match key. Historial is append-only; Historial[i+1].ID is always
// Historial[i].ID + 1.
type State struct {
	Turno         game.Color `json:"turno"`
	Estado        Estado     `json:"estado"`
	Contador      int        `json:"contador"`
	Ultimo        *Move      `json:"ultimo,omitempty"`
	Historial     []Move     `json:"historial"`
	CreadoEn      time.Time  `json:"creado_en"`
	ActualizadoEn time.Time  `json:"actualizado_en"`
}

// NewState returns the zeroed starting state: white to move, in progress,
// no history.
func NewState() *State {
	now := time.Now()
	return &State{
		Turno:         game.White,
		Estado:        EstadoEnCurso,
		Historial:     []Move{},
		CreadoEn:      now,
		ActualizadoEn: now,
	}
}

// Clone returns a deep copy so callers can hand the state across goroutine
// boundaries without aliasing the stored one.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Historial = append([]Move(nil), s.Historial...)
	if s.Ultimo != nil {
		u := *s.Ultimo
		out.Ultimo = &u
	}
	return &out
}

// Rechazo is a machine-readable rejection reason. Rejections are results,
// not errors: they leave state untouched and map to user-facing Spanish
// messages at the HTTP layer.
type Rechazo string

const (
	RechazoNinguno            Rechazo = ""
	RechazoDatosIncompletos   Rechazo = "datos-incompletos"
	RechazoNoEsTuTurno        Rechazo = "no-es-tu-turno"
	RechazoPiezaInvalida      Rechazo = "pieza-invalida"
	RechazoMovimiento         Rechazo = "movimiento-invalido"
	RechazoPartidaTerminada   Rechazo = "partida-terminada"
	RechazoRendirseFueraTurno Rechazo = "rendirse-fuera-de-turno"
)

// MoveResult is the outcome of a proposed move.
type MoveResult struct {
	Valido     bool
	Rechazo    Rechazo
	Turno      game.Color
	Movimiento *Move
	Contador   int
}

// ResignResult is the outcome of a resignation request.
type ResignResult struct {
	Success bool
	Rechazo Rechazo
	Jugador game.Color
	Ganador string // plural color word ("blancas"/"negras") when Success
	Estado  Estado
}

// PollResult answers the synchronization query: everything newer than the
// client's counter plus the reconciliation fields the poller always applies.
type PollResult struct {
	HayNuevoMovimiento bool
	Movimiento         *Move  // latest accepted move
	Movimientos        []Move // every move with ID > the client counter, in order
	Turno              game.Color
	Contador           int
	Estado             Estado
}
