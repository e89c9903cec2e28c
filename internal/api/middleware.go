package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	app_errors "intake-assistant/backend/internal/errors"
)

// corsMiddleware allows the chat widget to be embedded on other sites.
// An empty list or "*" allows every origin.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
	return c.Handler
}

// recoverJSON turns a panic into a well-formed 500 response. It replaces
// middleware.Recoverer, which writes an empty body.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("Recovered from panic",
				"request_id", middleware.GetReqID(r.Context()),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			respondWithError(w, r, fmt.Errorf("%w: panic: %v", app_errors.ErrInternal, rec))
		}()
		next.ServeHTTP(w, r)
	})
}
