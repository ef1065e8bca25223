package postgres

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}

	var nilCfg *Config
	if err := nilCfg.Validate(); !errors.Is(err, ErrNilConfig) {
		t.Errorf("nil config error = %v, want ErrNilConfig", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Host = "" }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"empty user", func(c *Config) { c.User = "" }},
		{"empty db name", func(c *Config) { c.DBName = "" }},
		{"zero max conns", func(c *Config) { c.Pool.MaxConns = 0 }},
		{"min above max", func(c *Config) { c.Pool.MinConns = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_ConnString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db.internal"
	cfg.Password = "secret"

	got := cfg.connString()
	for _, want := range []string{"host=db.internal", "port=5432", "password=secret", "sslmode=disable"} {
		if !strings.Contains(got, want) {
			t.Errorf("connString() = %q, missing %q", got, want)
		}
	}
}
