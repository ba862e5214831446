package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	gogrpc "google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/cafe/internal/platform/grpc"
	"github.com/louisbranch/cafe/internal/platform/timeouts"
	"github.com/louisbranch/cafe/internal/services/tab/api/httpapi"
	"github.com/louisbranch/cafe/internal/services/tab/engine"
	"github.com/louisbranch/cafe/internal/services/tab/storage/sqlite"
)

// HealthService is the gRPC health service name reported by the tab server.
const HealthService = "cafe.tab"

// Config holds runtime settings.
type Config struct {
	HTTPAddr      string
	GRPCAddr      string
	DBPath        string
	AppendRetries int
}

// Server owns the tab service listeners and stores.
type Server struct {
	httpListener net.Listener
	grpcListener net.Listener
	httpServer   *http.Server
	health       *platformgrpc.HealthServer
	store        *sqlite.Store
}

// New opens the journal and binds both listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := ensureDir(cfg.DBPath); err != nil {
		return nil, err
	}
	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open tab store: %w", err)
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen http on %s: %w", cfg.HTTPAddr, err)
	}
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = httpListener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("listen grpc on %s: %w", cfg.GRPCAddr, err)
	}

	handler := &engine.Handler{Store: store, Retries: cfg.AppendRetries}
	api := httpapi.NewServer(handler)

	return &Server{
		httpListener: httpListener,
		grpcListener: grpcListener,
		httpServer: &http.Server{
			Handler:           api.Handler(),
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		health: platformgrpc.NewHealthServer(HealthService),
		store:  store,
	}, nil
}

// HTTPAddr returns the bound HTTP address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the bound gRPC health address.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Run creates and serves a tab server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve runs both listeners and blocks until one fails or ctx ends, then
// drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if err := s.store.Close(); err != nil {
			log.Printf("close tab store: %v", err)
		}
	}()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("tab http listening at %v", s.httpListener.Addr())
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		log.Printf("tab health listening at %v", s.grpcListener.Addr())
		if err := s.health.Server.Serve(s.grpcListener); err != nil && !errors.Is(err, gogrpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		s.health.Stop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	s.health.SetServing(HealthService)
	return group.Wait()
}

// ensureDir creates parent paths for sqlite files so startup can create DB files.
func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	return nil
}
