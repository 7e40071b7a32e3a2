package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/breachalert/breachalert/frontend"
	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/breachalert/breachalert/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router         chi.Router
	authMiddleware *Middleware
	authHandler    *AuthHandler
	emailsHandler  *EmailsHandler
	scansHandler   *ScansHandler
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	authUC usecase.AuthUseCase,
	emailsUC usecase.EmailsUseCase,
	scanUC usecase.ScanUseCase,
	providerConfigured bool,
) (*Server, error) {
	router := chi.NewRouter()
	authMiddleware := NewMiddleware(authUC)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(authMiddleware.CORS)
	router.Use(middleware.Recoverer)

	authHandler := NewAuthHandler(authUC)
	emailsHandler := NewEmailsHandler(emailsUC)
	scansHandler := NewScansHandler(scanUC)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth(providerConfigured))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/me", authHandler.HandleUserMe)
		})

		r.Route("/emails", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/", emailsHandler.HandleList)
			r.Post("/", emailsHandler.HandleAdd)
			r.Delete("/{email}", emailsHandler.HandleRemove)
			r.Put("/{email}/scan-result", emailsHandler.HandleUpdateScanResult)
		})

		r.Route("/scans", func(r chi.Router) {
			// Free scan stays open for unauthenticated visitors
			r.Post("/free-scan", scansHandler.HandleFreeScan)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/scan", scansHandler.HandleScan)
				r.Post("/scan-all", scansHandler.HandleScanAll)
			})
		})
	})

	// Frontend: embedded SPA with index.html fallback routing
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		spaHandler, err := NewSPAHandler(fs)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create SPA handler")
		}
		router.Handle("/*", spaHandler)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:         router,
		authMiddleware: authMiddleware,
		authHandler:    authHandler,
		emailsHandler:  emailsHandler,
		scansHandler:   scansHandler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(providerConfigured bool) http.HandlerFunc {
	provider := "Not configured"
	if providerConfigured {
		provider = "Configured"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "BreachAlert backend is running",
			"mode":    "In-memory (no database)",
			"rapidApi": provider,
		})
	}
}

// handleFallbackHome handles the root path when the frontend build is missing
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>BreachAlert</title></head>
<body>
  <h1>BreachAlert</h1>
  <p>Email breach monitoring service. Frontend assets are not built.</p>
  <p>API health: <a href="/api/health">/api/health</a></p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeJSON writes a JSON response with the given status
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response with a short message
func writeError(ctx context.Context, w http.ResponseWriter, err error, status int) {
	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else if err != nil {
		message = err.Error()
	} else {
		message = "unknown error"
	}

	writeJSON(ctx, w, status, map[string]string{
		"error": message,
	})
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, model.ErrUserAlreadyExists),
		errors.Is(err, model.ErrEmailAlreadyMonitored):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrEmailNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return fallback
	}
}
