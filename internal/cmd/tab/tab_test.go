package tab

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("tab", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8088" {
		t.Fatalf("expected default http addr :8088, got %q", cfg.HTTPAddr)
	}
	if cfg.GRPCAddr != ":8089" {
		t.Fatalf("expected default grpc addr :8089, got %q", cfg.GRPCAddr)
	}
	if cfg.DBPath != "data/tab-events.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.AppendRetries != 3 {
		t.Fatalf("expected 3 append retries, got %d", cfg.AppendRetries)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("TAB_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("TAB_APPEND_RETRIES", "5")
	fs := flag.NewFlagSet("tab", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("expected env http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.AppendRetries != 5 {
		t.Fatalf("expected 5 append retries, got %d", cfg.AppendRetries)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TAB_DB_PATH", "/tmp/env.db")
	fs := flag.NewFlagSet("tab", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db-path", "/tmp/flag.db", "-grpc-addr", "127.0.0.1:9999"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/flag.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
	if cfg.GRPCAddr != "127.0.0.1:9999" {
		t.Fatalf("expected grpc addr override, got %q", cfg.GRPCAddr)
	}
}

func TestParseConfigRejectsNegativeRetries(t *testing.T) {
	fs := flag.NewFlagSet("tab", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-append-retries", "-1"}); err == nil {
		t.Fatal("expected error for negative retries")
	}
}

func TestParseConfigInvalidEnv(t *testing.T) {
	t.Setenv("TAB_APPEND_RETRIES", "many")
	fs := flag.NewFlagSet("tab", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for invalid env value")
	}
}

func TestRetries(t *testing.T) {
	if got := retries(0); got != -1 {
		t.Fatalf("retries(0) = %d, want -1", got)
	}
	if got := retries(4); got != 4 {
		t.Fatalf("retries(4) = %d, want 4", got)
	}
}
