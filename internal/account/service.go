package account

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ajedrez-online/internal/obslog"
)

// Service implements registration, login and profile edits on top of the
// users repository.
type Service struct {
	repo UserStore
}

func NewService(repo UserStore) *Service {
	return &Service{repo: repo}
}

// Register creates a new account. The caller sends the password twice;
// both copies must match before anything touches the database.
func (s *Service) Register(ctx context.Context, username, email, password, confirm string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrCredenciales
	}
	if password != confirm {
		return nil, ErrPasswordNoCoincide
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		Username:  username,
		Email:     email,
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	obslog.L().Info("usuario_registrado", zap.String("username", username))
	return u, nil
}

// Login verifies the password and returns the stored user. A missing
// user and a wrong password both come back as ErrCredenciales so the
// response does not leak which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredenciales
	}
	u, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		if err == ErrNoEncontrado {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrCredenciales
	}
	return u, nil
}

// Profile returns the account for username.
func (s *Service) Profile(ctx context.Context, username string) (*User, error) {
	return s.repo.ByUsername(ctx, username)
}

// UpdateProfile changes the email and optionally the password. An empty
// password leaves the current one in place.
func (s *Service) UpdateProfile(ctx context.Context, username, email, password, confirm string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrCredenciales
	}
	if password != confirm {
		return nil, ErrPasswordNoCoincide
	}
	taken, err := s.repo.EmailTaken(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailEnUso
	}

	hash := ""
	if password != "" {
		if hash, err = hashPassword(password); err != nil {
			return nil, err
		}
	}
	if err := s.repo.UpdateProfile(ctx, username, email, hash); err != nil {
		return nil, err
	}
	obslog.L().Info("perfil_actualizado", zap.String("username", username))
	return s.repo.ByUsername(ctx, username)
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
