package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// AppConfig is the process configuration, loaded from the environment.
type AppConfig struct {
	Bind string
	Port int

	// BaseURL is used when building invitation links; when empty the
	// request's Host header is used instead.
	BaseURL string

	DatabaseURL string
	RedisURL    string

	SessionTTLSec  int
	InviteTTLHours int

	// MsgOverrideDir points at a directory of YAML files overriding the
	// embedded Spanish message catalog.
	MsgOverrideDir string

	GravatarBaseURL  string
	AvatarTimeoutSec int
}

// Load reads the environment, applies defaults and validates required
// settings.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Bind:             "0.0.0.0",
		Port:             3000,
		SessionTTLSec:    24 * 60 * 60,
		InviteTTLHours:   24,
		GravatarBaseURL:  "https://www.gravatar.com/avatar",
		AvatarTimeoutSec: 5,
	}

	if v := strings.TrimSpace(os.Getenv("BIND")); v != "" {
		cfg.Bind = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return nil, errors.New("PORT must be a valid port number")
		}
		cfg.Port = n
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/")

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("INVITE_TTL_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.InviteTTLHours = n
		}
	}
	cfg.MsgOverrideDir = strings.TrimSpace(os.Getenv("MSG_OVERRIDE_DIR"))

	if v := strings.TrimSpace(os.Getenv("GRAVATAR_BASE_URL")); v != "" {
		cfg.GravatarBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("AVATAR_TIMEOUT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AvatarTimeoutSec = n
		}
	}

	return cfg, nil
}
