package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ajedrez-online/internal/account"
	"ajedrez-online/internal/config"
	"ajedrez-online/internal/httpapi"
	"ajedrez-online/internal/invite"
	"ajedrez-online/internal/match"
	"ajedrez-online/internal/msgcat"
	"ajedrez-online/internal/obslog"
	"ajedrez-online/internal/pgdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("log init error: %v", err)
	}
	logger := obslog.L()
	defer logger.Sync()

	cat, err := msgcat.New(cfg.MsgOverrideDir)
	if err != nil {
		logger.Fatal("catalogo_de_mensajes", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Match state: redis when configured, in-process otherwise.
	var matchStore match.Store
	sessionTTL := time.Duration(cfg.SessionTTLSec) * time.Second
	var sessions account.Sessions
	if cfg.RedisURL != "" {
		rstore, err := match.NewRedisStore(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis_no_disponible", zap.Error(err))
		}
		matchStore = rstore
		sessions = account.NewRedisSessions(rstore.Client(), sessionTTL)
	} else {
		logger.Warn("redis_sin_configurar", zap.String("fallback", "memoria"))
		matchStore = match.NewMemoryStore()
		sessions = account.NewMemorySessions(sessionTTL)
	}
	matches := match.NewManager(matchStore)
	defer matches.Close()

	// Accounts and invitations: postgres when configured.
	var users account.UserStore
	var inviteStore invite.Store
	if cfg.DatabaseURL != "" {
		db, err := pgdb.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("postgres_no_disponible", zap.Error(err))
		}
		defer db.Close()

		accountRepo := account.NewRepository(db)
		if err := accountRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal("esquema_usuarios", zap.Error(err))
		}
		inviteRepo := invite.NewRepository(db)
		if err := inviteRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal("esquema_invitaciones", zap.Error(err))
		}
		users = accountRepo
		inviteStore = inviteRepo
	} else {
		logger.Warn("postgres_sin_configurar", zap.String("fallback", "memoria"))
		users = account.NewMemoryUsers()
		inviteStore = invite.NewMemoryStore()
	}

	accounts := account.NewService(users)
	invites := invite.NewService(inviteStore, time.Duration(cfg.InviteTTLHours)*time.Hour)
	avatars := account.NewAvatarClient(cfg.GravatarBaseURL,
		account.WithAvatarTimeout(time.Duration(cfg.AvatarTimeoutSec)*time.Second))

	// Background sweep for invitations past their deadline.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := invites.ExpireOverdue(ctx); err != nil {
					logger.Warn("expiracion_invitaciones", zap.Error(err))
				} else if n > 0 {
					logger.Info("invitaciones_expiradas", zap.Int("total", n))
				}
			}
		}
	}()

	srv := httpapi.NewServer(cfg, cat, matches, accounts, sessions, invites, avatars)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("servidor", zap.Error(err))
	}
	logger.Info("servidor_detenido")
}
