package redis

import (
	"errors"
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

	cfg := DefaultConfig()
	cfg.Host = ""
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty host error = %v, want ErrInvalidConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Port = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad port error = %v, want ErrInvalidConfig", err)
	}
}
