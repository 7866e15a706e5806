package account

import (
	"context"
	"errors"
	"time"
)

// User is a registered account. Hash is the bcrypt password hash and is
// never serialized.
type User struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"`
	CreatedAt time.Time `json:"creadoEn"`
}

// UserStore abstracts user persistence so the service runs against
// PostgreSQL in production and an in-memory store otherwise.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	ByUsername(ctx context.Context, username string) (*User, error)
	EmailTaken(ctx context.Context, email, username string) (bool, error)
	UpdateProfile(ctx context.Context, username, email, hash string) error
}

var (
	ErrUsuarioExiste      = errors.New("el usuario o email ya existe")
	ErrEmailEnUso         = errors.New("el email ya está en uso")
	ErrCredenciales       = errors.New("usuario o contraseña incorrectos")
	ErrPasswordNoCoincide = errors.New("las contraseñas no coinciden")
	ErrNoEncontrado       = errors.New("usuario no encontrado")
	ErrNoAutorizado       = errors.New("sesión no válida")
)
