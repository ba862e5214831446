package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"CAFE_TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"CAFE_TEST_TIMEOUT" envDefault:"2s"`
}

type prefixedConfig struct {
	Addr    string `env:"ADDR" envDefault:":8088"`
	Retries int    `env:"RETRIES" envDefault:"3"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("port = %d, want 123", cfg.Port)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("timeout = %v, want 2s", cfg.Timeout)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CAFE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	t.Setenv("CAFE_TEST_ADDR", "127.0.0.1:9000")

	var cfg prefixedConfig
	if err := ParseEnvWithPrefix(&cfg, "CAFE_TEST_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("addr = %q, want %q", cfg.Addr, "127.0.0.1:9000")
	}
	if cfg.Retries != 3 {
		t.Fatalf("retries = %d, want 3", cfg.Retries)
	}
}
