package httpapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"ajedrez-online/internal/account"
	"ajedrez-online/internal/game"
	"ajedrez-online/internal/invite"
)

const dateLayout = "2006-01-02"

// invitationLink builds the absolute join URL for an invitation, using
// the configured base URL when set and the request host otherwise.
func (s *Server) invitationLink(r *http.Request, invitationID string) string {
	base := s.cfg.BaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/join-game/" + invitationID
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *account.User) {
	var req struct {
		Color string `json:"color"`
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}

	inv, err := s.invites.CreateGame(r.Context(), user.Username, game.Color(req.Color), req.Email)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	mensaje := s.cat.Text("invitacion.creada", nil)
	if inv.InvitedEmail != "" {
		mensaje = s.cat.Text("invitacion.creada_con_email", map[string]any{"Email": inv.InvitedEmail})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"mensaje":        mensaje,
		"gameId":         inv.GameID,
		"invitationId":   inv.ID,
		"invitationLink": s.invitationLink(r, inv.ID),
		"ownerColor":     inv.OwnerColor,
	})
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, p httprouter.Params, user *account.User) {
	inv, color, err := s.invites.Join(r.Context(), p.ByName("invitationId"), user.Username)
	switch err {
	case nil:
	case invite.ErrInvitacionNoEncontrada:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("invitacion.no_encontrada", nil),
		})
		return
	case invite.ErrPropia:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("invitacion.propia", nil),
		})
		return
	default:
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"gameId":       inv.GameID,
		"opponentName": inv.Owner,
		"playerColor":  color,
	})
}

func (s *Server) handlePrivateGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *account.User) {
	pending, active, err := s.invites.Overview(r.Context(), user.Username, user.Email)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	invitations := make([]map[string]any, 0, len(pending))
	for _, inv := range pending {
		invitations = append(invitations, map[string]any{
			"invitationId": inv.ID,
			"ownerName":    inv.Owner,
			"ownerColor":   inv.OwnerColor,
			"createdDate":  inv.CreatedAt.Format(dateLayout),
		})
	}

	games := make([]map[string]any, 0, len(active))
	for _, g := range active {
		opponent := g.Opponent
		userColor := "Propietario"
		if g.Owner != user.Username {
			opponent = g.Owner
			userColor = "Invitado"
		}
		if opponent == "" {
			opponent = "Esperando oponente"
		}
		games = append(games, map[string]any{
			"gameId":       g.GameID,
			"opponentName": opponent,
			"status":       g.Status,
			"userColor":    userColor,
			"startDate":    g.CreatedAt.Format(dateLayout),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pendingInvitations": invitations,
		"activeGames":        games,
	})
}

func (s *Server) handleDeclineInvitation(w http.ResponseWriter, r *http.Request, p httprouter.Params, user *account.User) {
	err := s.invites.Decline(r.Context(), p.ByName("invitationId"), user.Email)
	switch err {
	case nil:
	case invite.ErrInvitacionNoEncontrada:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("invitacion.no_encontrada", nil),
		})
		return
	case invite.ErrSinPermiso:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("invitacion.sin_permiso", nil),
		})
		return
	default:
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mensaje": s.cat.Text("invitacion.rechazada", nil),
	})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request, p httprouter.Params, user *account.User) {
	err := s.invites.Delete(r.Context(), p.ByName("gameId"), user.Username)
	switch err {
	case nil:
	case invite.ErrPartidaNoEncontrada:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("registro.partida_no_encontrada", nil),
		})
		return
	case invite.ErrSoloCreador:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("registro.solo_creador", nil),
		})
		return
	case invite.ErrEnCursoConOponente:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("registro.en_curso_con_oponente", nil),
		})
		return
	default:
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mensaje": s.cat.Text("registro.eliminada", nil),
	})
}

func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *account.User) {
	invs, games, err := s.invites.Mine(r.Context(), user.Username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	now := time.Now()
	invitations := make([]map[string]any, 0, len(invs))
	for _, inv := range invs {
		invitations = append(invitations, map[string]any{
			"invitationId":   inv.ID,
			"gameId":         inv.GameID,
			"status":         inv.Status,
			"ownerColor":     inv.OwnerColor,
			"invitedEmail":   inv.InvitedEmail,
			"acceptedByName": inv.AcceptedBy,
			"createdDate":    inv.CreatedAt.Format(dateLayout),
			"invitationLink": s.invitationLink(r, inv.ID),
			"isExpired":      inv.Expired(now),
		})
	}

	records := make([]map[string]any, 0, len(games))
	for _, g := range games {
		opponent := g.Opponent
		if opponent == "" {
			opponent = "Sin oponente"
		}
		entry := map[string]any{
			"gameId":       g.GameID,
			"opponentName": opponent,
			"status":       g.Status,
			"result":       g.Result,
			"createdDate":  g.CreatedAt.Format(dateLayout),
		}
		if g.FinishedAt != nil {
			entry["finishedDate"] = g.FinishedAt.Format(dateLayout)
		}
		records = append(records, entry)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"invitations": invitations,
		"games":       records,
	})
}

func (s *Server) handleGameFinish(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *account.User) {
	var req struct {
		Ganador     string `json:"ganador"`
		EstadoJuego string `json:"estadoJuego"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}

	if _, err := s.invites.Finish(r.Context(), user.Username, game.Color(req.Ganador), req.EstadoJuego); err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mensaje": s.cat.Text("registro.guardada", nil),
	})
}
