package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jrfournier/carttally/internal/handler"
	"github.com/jrfournier/carttally/internal/metrics"
	"github.com/jrfournier/carttally/internal/middleware"
	"github.com/jrfournier/carttally/internal/store"
	ws "github.com/jrfournier/carttally/internal/websocket"
)

// Config carries the server tunables main passes through from the environment.
type Config struct {
	// PINAttemptLimit caps PIN verification attempts per IP per minute.
	PINAttemptLimit int
}

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	listH       *handler.ListHandler
	itemH       *handler.ItemHandler
	categoryH   *handler.CategoryHandler
	settingsH   *handler.SettingsHandler
	summaryH    *handler.SummaryHandler
	rateLimiter *middleware.RateLimiter
	cfg         Config
	logger      *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	listStore := store.NewListStore(db)
	itemStore := store.NewItemStore(db)
	categoryStore := store.NewCategoryStore(db)
	settingsStore := store.NewSettingsStore(db)

	if cfg.PINAttemptLimit < 1 {
		cfg.PINAttemptLimit = 10
	}

	return &Server{
		db:          db,
		hub:         hub,
		listH:       handler.NewListHandler(listStore, hub, logger.With("component", "list")),
		itemH:       handler.NewItemHandler(itemStore, listStore, settingsStore, hub, logger.With("component", "item")),
		categoryH:   handler.NewCategoryHandler(categoryStore, hub, logger.With("component", "category")),
		settingsH:   handler.NewSettingsHandler(settingsStore, hub, logger.With("component", "settings")),
		summaryH:    handler.NewSummaryHandler(listStore, itemStore, settingsStore, logger.With("component", "summary")),
		rateLimiter: middleware.NewRateLimiter(),
		cfg:         cfg,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))

	// List routes
	mux.HandleFunc("GET /api/lists", s.listH.List)
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Get)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.Update)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)
	mux.HandleFunc("GET /api/lists/{id}/summary", s.summaryH.Get)

	// Item routes
	mux.HandleFunc("GET /api/lists/{list_id}/items", s.itemH.ListByList)
	mux.HandleFunc("POST /api/lists/{list_id}/items", s.itemH.Create)
	mux.HandleFunc("POST /api/lists/{list_id}/clear-purchased", s.itemH.ClearPurchased)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
	mux.HandleFunc("POST /api/items/{id}/purchase", s.itemH.TogglePurchased)

	// Category routes
	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("PUT /api/categories/{id}", s.categoryH.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	// Settings routes
	mux.HandleFunc("GET /api/settings/province", s.settingsH.GetProvince)
	mux.HandleFunc("PUT /api/settings/province", s.settingsH.UpdateProvince)
	mux.HandleFunc("GET /api/tax-regimes", s.settingsH.ListRegimes)
	mux.HandleFunc("GET /api/tax-exemptions", s.settingsH.ListExemptions)
	mux.HandleFunc("POST /api/pin", s.settingsH.SetPIN)
	mux.HandleFunc("DELETE /api/pin", s.settingsH.ClearPIN)
	mux.HandleFunc("POST /api/pin/verify", s.rateLimitedHandler(s.settingsH.VerifyPIN))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, s.cfg.PINAttemptLimit, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
