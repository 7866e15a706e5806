package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"ajedrez-online/internal/account"
)

type authedHandle func(w http.ResponseWriter, r *http.Request, p httprouter.Params, user *account.User)

// requireLogin resolves the session cookie to a full user record and
// rejects the request with 401 otherwise.
func (s *Server) requireLogin(next authedHandle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		user, err := s.currentUser(r)
		if err == account.ErrNoAutorizado || err == account.ErrNoEncontrado {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"mensaje": s.cat.Text("cuenta.no_autorizado", nil),
			})
			return
		}
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		next(w, r, p, user)
	}
}

func (s *Server) currentUser(r *http.Request) (*account.User, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, account.ErrNoAutorizado
	}
	username, err := s.sessions.Lookup(r.Context(), c.Value)
	if err != nil {
		return nil, err
	}
	return s.accounts.Profile(r.Context(), username)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
