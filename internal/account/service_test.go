package account

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
)

func newTestService() *Service {
	return NewService(NewMemoryUsers())
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	u, err := s.Register(ctx, "ana", "ana@example.com", "secreta", "secreta")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Hash == "secreta" || u.Hash == "" {
		t.Fatal("password stored without hashing")
	}

	if _, err := s.Login(ctx, "ana", "secreta"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := s.Login(ctx, "ana", "otra"); err != ErrCredenciales {
		t.Fatalf("wrong password: err = %v, want ErrCredenciales", err)
	}
	if _, err := s.Login(ctx, "nadie", "secreta"); err != ErrCredenciales {
		t.Fatalf("unknown user: err = %v, want ErrCredenciales", err)
	}
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	s := newTestService()
	if _, err := s.Register(context.Background(), "ana", "ana@example.com", "una", "otra"); err != ErrPasswordNoCoincide {
		t.Fatalf("err = %v, want ErrPasswordNoCoincide", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	if _, err := s.Register(ctx, "ana", "ana@example.com", "x", "x"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, "ana", "otra@example.com", "x", "x"); err != ErrUsuarioExiste {
		t.Fatalf("duplicate username: err = %v", err)
	}
	if _, err := s.Register(ctx, "eva", "ana@example.com", "x", "x"); err != ErrUsuarioExiste {
		t.Fatalf("duplicate email: err = %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	if _, err := s.Register(ctx, "ana", "ana@example.com", "vieja", "vieja"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, "eva", "eva@example.com", "x", "x"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Email change without touching the password.
	u, err := s.UpdateProfile(ctx, "ana", "nueva@example.com", "", "")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Email != "nueva@example.com" {
		t.Fatalf("email = %s", u.Email)
	}
	if _, err := s.Login(ctx, "ana", "vieja"); err != nil {
		t.Fatalf("old password stopped working: %v", err)
	}

	// Password change.
	if _, err := s.UpdateProfile(ctx, "ana", "nueva@example.com", "nueva", "nueva"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if _, err := s.Login(ctx, "ana", "nueva"); err != nil {
		t.Fatalf("Login after password change: %v", err)
	}
	if _, err := s.Login(ctx, "ana", "vieja"); err != ErrCredenciales {
		t.Fatalf("old password still works: %v", err)
	}

	// Someone else's email is off limits.
	if _, err := s.UpdateProfile(ctx, "ana", "eva@example.com", "", ""); err != ErrEmailEnUso {
		t.Fatalf("err = %v, want ErrEmailEnUso", err)
	}
}

func TestSessions(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	stores := map[string]Sessions{
		"redis":  NewRedisSessions(rdb, time.Hour),
		"memory": NewMemorySessions(time.Hour),
	}
	for name, sess := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			token, err := sess.Create(ctx, "ana")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			username, err := sess.Lookup(ctx, token)
			if err != nil || username != "ana" {
				t.Fatalf("Lookup = %q, %v", username, err)
			}
			if _, err := sess.Lookup(ctx, "no-existe"); err != ErrNoAutorizado {
				t.Fatalf("bogus token: err = %v", err)
			}
			if err := sess.Destroy(ctx, token); err != nil {
				t.Fatalf("Destroy: %v", err)
			}
			if _, err := sess.Lookup(ctx, token); err != ErrNoAutorizado {
				t.Fatalf("destroyed token still valid: %v", err)
			}
		})
	}
}

func TestAvatarURL(t *testing.T) {
	c := NewAvatarClient("https://www.gravatar.com/avatar", WithAvatarSize(80))
	got := c.URL("  Ana@Example.COM ")
	// md5("ana@example.com")
	want := "https://www.gravatar.com/avatar/cdb9d6a1dddc375a09cc83e3001598dc?d=identicon&s=80"
	if got != want {
		t.Fatalf("URL = %s, want %s", got, want)
	}
}
