// Package httpapi exposes the game, account and invitation services as
// a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"ajedrez-online/internal/account"
	"ajedrez-online/internal/boardimg"
	"ajedrez-online/internal/config"
	"ajedrez-online/internal/invite"
	"ajedrez-online/internal/match"
	"ajedrez-online/internal/msgcat"
	"ajedrez-online/internal/obslog"
)

const (
	releaseVersion = "1.0.0"
	sessionCookie  = "sesion"
	timeout        = 10 * time.Second
)

// Server wires the services behind the HTTP routes.
type Server struct {
	cfg      *config.AppConfig
	cat      *msgcat.Catalog
	matches  *match.Manager
	accounts *account.Service
	sessions account.Sessions
	invites  *invite.Service
	avatars  *account.AvatarClient
	boards   *boardimg.Renderer
}

func NewServer(
	cfg *config.AppConfig,
	cat *msgcat.Catalog,
	matches *match.Manager,
	accounts *account.Service,
	sessions account.Sessions,
	invites *invite.Service,
	avatars *account.AvatarClient,
) *Server {
	return &Server{
		cfg:      cfg,
		cat:      cat,
		matches:  matches,
		accounts: accounts,
		sessions: sessions,
		invites:  invites,
		avatars:  avatars,
		boards:   boardimg.NewRenderer(),
	}
}

// Router builds the route table.
func (s *Server) Router() *httprouter.Router {
	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		obslog.L().Error("panic_en_handler",
			zap.String("path", r.URL.Path),
			zap.Any("panic", v))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"mensaje": s.cat.Text("servidor.error_interno", nil),
		})
	}

	mux.GET("/healthz", s.logged(s.handleHealth))
	mux.GET("/version", s.logged(s.handleVersion))

	// Board state and moves.
	mux.GET("/turno-actual", s.logged(s.handleTurnoActual))
	mux.GET("/estado-juego", s.logged(s.handleEstadoJuego))
	mux.POST("/validar-movimiento", s.logged(s.handleValidarMovimiento))
	mux.POST("/rendirse", s.logged(s.handleRendirse))
	mux.GET("/ultimo-movimiento", s.logged(s.handleUltimoMovimientoBase))
	mux.GET("/ultimo-movimiento/:contadorCliente", s.logged(s.handleUltimoMovimiento))
	mux.POST("/nueva-partida", s.logged(s.handleNuevaPartida))
	mux.GET("/tablero.png", s.logged(s.handleTableroPNG))

	// Accounts.
	mux.POST("/register", s.logged(s.handleRegister))
	mux.POST("/login", s.logged(s.handleLogin))
	mux.POST("/logout", s.logged(s.handleLogout))
	mux.GET("/profile", s.logged(s.requireLogin(s.handleProfile)))
	mux.POST("/edit", s.logged(s.requireLogin(s.handleEdit)))
	mux.GET("/avatar/:username", s.logged(s.handleAvatar))

	// Private games and invitations.
	mux.POST("/creategame", s.logged(s.requireLogin(s.handleCreateGame)))
	mux.GET("/join-game/:invitationId", s.logged(s.requireLogin(s.handleJoinGame)))
	mux.GET("/privategame", s.logged(s.requireLogin(s.handlePrivateGame)))
	mux.POST("/decline-invitation/:invitationId", s.logged(s.requireLogin(s.handleDeclineInvitation)))
	mux.DELETE("/delete-game/:gameId", s.logged(s.requireLogin(s.handleDeleteGame)))
	mux.GET("/my-games", s.logged(s.requireLogin(s.handleMyGames)))
	mux.POST("/game/finish", s.logged(s.requireLogin(s.handleGameFinish)))

	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port)),
		Handler:           s.Router(),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		obslog.L().Info("servidor_escuchando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"version": releaseVersion})
}
