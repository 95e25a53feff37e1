// Package config loads the portal and backend settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// Server holds what both binaries share.
type Server struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
}

// IsDevelopment enables pretty logs and relaxed checks.
func (s Server) IsDevelopment() bool {
	return strings.EqualFold(s.Env, "development")
}

func (s Server) validate() error {
	if strings.EqualFold(s.Env, "production") && s.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

// Portal configures cmd/portal.
type Portal struct {
	Server

	Upstream  UpstreamConfig
	DemoUser  DemoUserConfig
	Workspace WorkspaceConfig
}

type UpstreamConfig struct {
	URL          string        `env:"COMPLAINTS_API_URL,     default=http://localhost:5000/api/v1"`
	Timeout      time.Duration `env:"COMPLAINTS_API_TIMEOUT, default=10s"`
	FallbackMode string        `env:"FALLBACK_MODE,          default=unavailable"`
}

// DemoUserConfig is the identity used when a request carries no token.
type DemoUserConfig struct {
	ID    string `env:"DEMO_USER_ID,    default=demo-user-id"`
	Name  string `env:"DEMO_USER_NAME,  default=Demo Student"`
	Email string `env:"DEMO_USER_EMAIL, default=student@example.com"`
	Role  string `env:"DEMO_USER_ROLE,  default=student"`
}

// Session converts the demo identity into a domain session.
func (d DemoUserConfig) Session() (domain.Session, error) {
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		return domain.Session{}, fmt.Errorf("DEMO_USER_ROLE: %w", err)
	}
	return domain.Session{UserID: d.ID, Name: d.Name, Email: d.Email, Role: role}, nil
}

// WorkspaceConfig controls how long per-session view state is kept.
type WorkspaceConfig struct {
	TTL   time.Duration `env:"WORKSPACE_TTL,   default=30m"`
	Sweep string        `env:"WORKSPACE_SWEEP, default=@every 1m"`
}

func (p *Portal) validate() error {
	if err := p.Server.validate(); err != nil {
		return err
	}
	if p.Upstream.Timeout <= 0 {
		return errors.New("COMPLAINTS_API_TIMEOUT must be positive")
	}
	if p.Workspace.TTL <= 0 {
		return errors.New("WORKSPACE_TTL must be positive")
	}
	if _, err := p.DemoUser.Session(); err != nil {
		return err
	}
	return nil
}

// Backend configures cmd/complaintsd.
type Backend struct {
	Server

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=complaint_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// LoadPortal reads the portal configuration from the process environment.
func LoadPortal(ctx context.Context) (*Portal, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return loadPortal(ctx, envconfig.OsLookuper())
}

// LoadBackend reads the backend configuration from the process environment.
func LoadBackend(ctx context.Context) (*Backend, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return loadBackend(ctx, envconfig.OsLookuper())
}

func loadPortal(ctx context.Context, l envconfig.Lookuper) (*Portal, error) {
	var cfg Portal
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func loadBackend(ctx context.Context, l envconfig.Lookuper) (*Backend, error) {
	var cfg Backend
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Server.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv reads .env without overriding variables already set. A missing
// file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: read .env: %w", err)
	}
	return nil
}
