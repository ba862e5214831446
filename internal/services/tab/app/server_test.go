package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	platformgrpc "github.com/louisbranch/cafe/internal/platform/grpc"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		HTTPAddr:      "127.0.0.1:0",
		GRPCAddr:      "127.0.0.1:0",
		DBPath:        filepath.Join(t.TempDir(), "data", "tab-events.db"),
		AppendRetries: 1,
	}
}

// TestServeStopsOnContext verifies the server serves and stops on cancel.
func TestServeStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	srv, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ctx)
	}()

	conn, err := grpc.NewClient(srv.GRPCAddr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial health: %v", err)
	}
	defer conn.Close()

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()
	if err := platformgrpc.WaitForHealth(waitCtx, conn, HealthService, nil); err != nil {
		t.Fatalf("wait for health: %v", err)
	}

	resp, err := http.Post("http://"+srv.HTTPAddr()+"/api/tabs", "application/json", strings.NewReader(`{"table_number":1,"waiter":"Ana"}`))
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	var created struct {
		TabID string `json:"tab_id"`
	}
	err = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || created.TabID == "" {
		t.Fatalf("create status = %d tab id = %q", resp.StatusCode, created.TabID)
	}

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for server to stop")
	}

	if _, err := os.Stat(cfg.DBPath); err != nil {
		t.Fatalf("db file: %v", err)
	}
}

func TestNewRequiresDBPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = ""
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestNewRejectsBadListenAddr(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPAddr = "bad-address"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestEnsureDirCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "events.db")
	if err := ensureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Fatalf("expected directory, err = %v", err)
	}
}

func TestEnsureDirRejectsFileParent(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(parent, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ensureDir(filepath.Join(parent, "events.db")); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}
