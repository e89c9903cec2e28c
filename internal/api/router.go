package api

import (
	"net/http"
	"os"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "intake-assistant/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries the non-handler settings of the router.
type RouterConfig struct {
	AllowedOrigins []string
	// FrontendDir holds the built widget. It is skipped when it does not exist.
	FrontendDir    string
	RequestTimeout time.Duration
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(cfg RouterConfig, chatHandler *ChatHandler, directoryHandler *DirectoryHandler, diagHandler *DiagHandler) *chi.Mux {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(recoverJSON)
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe for container platforms.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	// --- API Routes ---
	// The widget posts to /api/chat, so routes are not versioned.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))

		r.Post("/chat", chatHandler.HandleChat)

		r.Get("/providers", directoryHandler.HandleListProviders)
		r.Get("/schedule", directoryHandler.HandleListSlots)
		r.Post("/schedule", directoryHandler.HandleBook)

		r.Get("/diag", diagHandler.HandleDiag)
	})

	// --- Frontend File Server ---
	if info, err := os.Stat(cfg.FrontendDir); err == nil && info.IsDir() {
		fileServer := http.FileServer(http.Dir(cfg.FrontendDir))
		r.Handle("/*", fileServer)
	}

	return r
}
