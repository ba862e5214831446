package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/louisbranch/cafe/internal/platform/i18n"
	"github.com/louisbranch/cafe/internal/platform/requestctx"
	"github.com/louisbranch/cafe/internal/platform/timeouts"
	"github.com/louisbranch/cafe/internal/services/tab/domain/tab"
	"github.com/louisbranch/cafe/internal/services/tab/engine"
	"github.com/louisbranch/cafe/internal/services/tab/storage"
)

// TabService is the engine surface the API drives.
type TabService interface {
	Execute(ctx context.Context, cmd tab.Command) (engine.Result, error)
	Load(ctx context.Context, tabID uuid.UUID) (tab.State, uint64, error)
	Records(ctx context.Context, tabID uuid.UUID) ([]storage.Record, error)
	ListTabs(ctx context.Context) ([]string, error)
}

var _ TabService = (*engine.Handler)(nil)

// Server serves the tab API.
type Server struct {
	tabs  TabService
	newID func() uuid.UUID
}

// Option configures a Server.
type Option func(*Server)

// WithIDGenerator overrides how new tab ids are minted.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Server) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewServer builds a Server over tabs.
func NewServer(tabs TabService, opts ...Option) *Server {
	s := &Server{tabs: tabs, newID: uuid.New}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeouts.Request))
	r.Use(resolveLanguage)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api/tabs", func(r chi.Router) {
		r.Get("/", s.listTabs)
		r.Post("/", s.createTab)
		r.Route("/{tabID}", func(r chi.Router) {
			r.Get("/", s.getTab)
			r.Get("/events", s.getEvents)
			r.Post("/open", s.openTab)
			r.Post("/orders", s.placeOrder)
			r.Post("/drinks/served", s.markDrinksServed)
			r.Post("/food/served", s.markFoodServed)
		})
	})
	return r
}

func resolveLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := i18n.ResolveTag(r)
		w.Header().Set("Content-Language", tag.String())
		next.ServeHTTP(w, r.WithContext(requestctx.WithLanguage(r.Context(), tag)))
	})
}
