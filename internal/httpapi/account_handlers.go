package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"ajedrez-online/internal/account"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}

	u, err := s.accounts.Register(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	switch err {
	case nil:
	case account.ErrPasswordNoCoincide:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("cuenta.password_no_coincide", nil),
		})
		return
	case account.ErrUsuarioExiste:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("cuenta.usuario_existe", nil),
		})
		return
	case account.ErrCredenciales:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	default:
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mensaje": s.cat.Text("cuenta.registro_ok", nil),
		"usuario": u,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}

	u, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err == account.ErrCredenciales {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("cuenta.credenciales", nil),
		})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	token, err := s.sessions.Create(r.Context(), u.Username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.setSessionCookie(w, token, s.cfg.SessionTTLSec)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"usuario": u,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := s.sessions.Destroy(r.Context(), c.Value); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	s.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mensaje": s.cat.Text("cuenta.sesion_cerrada", nil),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *account.User) {
	games, stats, err := s.invites.History(r.Context(), user.Username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"usuario":   user,
		"stats":     stats,
		"historial": games,
		"avatarUrl": s.avatars.URL(user.Email),
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *account.User) {
	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	}

	u, err := s.accounts.UpdateProfile(r.Context(), user.Username, req.Email, req.Password, req.ConfirmPassword)
	switch err {
	case nil:
	case account.ErrPasswordNoCoincide:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("cuenta.password_no_coincide", nil),
		})
		return
	case account.ErrEmailEnUso:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("cuenta.email_en_uso", nil),
		})
		return
	case account.ErrCredenciales:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("partida.datos_incompletos", nil),
		})
		return
	default:
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"mensaje": s.cat.Text("cuenta.actualizada", nil),
		"usuario": u,
	})
}

func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	u, err := s.accounts.Profile(r.Context(), p.ByName("username"))
	if err == account.ErrNoEncontrado {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data, ctype, err := s.avatars.Fetch(u.Email)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
