package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"ajedrez-online/internal/boardimg"
	"ajedrez-online/internal/game"
	"ajedrez-online/internal/match"
)

// partidaParam picks the match key from the query string or a decoded
// body, defaulting to the shared public match.
func partidaParam(r *http.Request, body string) string {
	if body != "" {
		return body
	}
	return r.URL.Query().Get("partida")
}

func (s *Server) handleTurnoActual(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	st, err := s.matches.Snapshot(r.Context(), partidaParam(r, ""))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"turno": st.Turno})
}

func (s *Server) handleEstadoJuego(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	st, err := s.matches.Snapshot(r.Context(), partidaParam(r, ""))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"turnoActual": st.Turno,
		"tablero":     game.GenerateBoard(),
		"estadoJuego": st.Estado,
	})
}

func (s *Server) handleValidarMovimiento(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Partida string `json:"partida"`
		Pieza   string `json:"pieza"`
		Color   string `json:"color"`
		Inicial string `json:"inicial"`
		Final   string `json:"final"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"valido":  false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}

	res, err := s.matches.ValidateMove(r.Context(), partidaParam(r, req.Partida),
		req.Pieza, req.Color, req.Inicial, req.Final)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	if res.Rechazo == match.RechazoDatosIncompletos {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"valido":  false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valido":              res.Valido,
		"mensaje":             s.moveMessage(res),
		"nuevoTurno":          res.Turno,
		"movimiento":          res.Movimiento,
		"contadorMovimientos": res.Contador,
	})
}

func (s *Server) moveMessage(res *match.MoveResult) string {
	switch res.Rechazo {
	case match.RechazoNinguno:
		return s.cat.Text("partida.movimiento_valido", nil)
	case match.RechazoDatosIncompletos:
		return s.cat.Text("partida.datos_incompletos", nil)
	case match.RechazoNoEsTuTurno:
		return s.cat.Text("partida.no_es_tu_turno", map[string]any{"Turno": string(res.Turno)})
	case match.RechazoPiezaInvalida:
		return s.cat.Text("partida.pieza_invalida", nil)
	case match.RechazoPartidaTerminada:
		return s.cat.Text("partida.ya_terminada", nil)
	default:
		return s.cat.Text("partida.movimiento_invalido", nil)
	}
}

func (s *Server) handleRendirse(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Partida string `json:"partida"`
		Jugador string `json:"jugador"`
	}
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Jugador) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.jugador_requerido", nil),
		})
		return
	}

	res, err := s.matches.Resign(r.Context(), partidaParam(r, req.Partida), req.Jugador)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	switch res.Rechazo {
	case match.RechazoNinguno:
		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"mensaje":     s.cat.Text("partida.rendicion", map[string]any{"Color": capitalize(string(res.Jugador) + "s")}),
			"ganador":     res.Ganador,
			"estadoJuego": res.Estado,
		})
	case match.RechazoPartidaTerminada:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.ya_terminada", nil),
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.rendirse_fuera_turno", nil),
		})
	}
}

func (s *Server) handleUltimoMovimiento(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	contador, _ := strconv.Atoi(p.ByName("contadorCliente"))

	res, err := s.matches.Poll(r.Context(), partidaParam(r, ""), contador)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	payload := map[string]any{
		"hayNuevoMovimiento":  res.HayNuevoMovimiento,
		"turnoActual":         res.Turno,
		"contadorMovimientos": res.Contador,
		"estadoJuego":         res.Estado,
	}
	if res.HayNuevoMovimiento {
		payload["movimiento"] = res.Movimiento
		payload["movimientos"] = res.Movimientos
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleUltimoMovimientoBase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	st, err := s.matches.Snapshot(r.Context(), partidaParam(r, ""))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hayNuevoMovimiento":  false,
		"turnoActual":         st.Turno,
		"contadorMovimientos": st.Contador,
		"estadoJuego":         st.Estado,
		"ultimoMovimiento":    st.Ultimo,
	})
}

func (s *Server) handleNuevaPartida(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Partida string `json:"partida"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}

	st, err := s.matches.Reset(r.Context(), partidaParam(r, req.Partida))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"mensaje":             s.cat.Text("partida.nueva", nil),
		"turnoActual":         st.Turno,
		"estadoJuego":         st.Estado,
		"contadorMovimientos": st.Contador,
	})
}

func (s *Server) handleTableroPNG(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	st, err := s.matches.Snapshot(r.Context(), partidaParam(r, ""))
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	opts := boardimg.Options{}
	if st.Ultimo != nil {
		opts.Highlight = &boardimg.Highlight{From: st.Ultimo.Inicial, To: st.Ultimo.Final}
	}
	data, err := s.boards.RenderPNG(r.Context(), game.GenerateBoard(), opts)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
