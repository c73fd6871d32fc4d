/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:   Unique ID per request for tracing
  2. RealIP:      Client IP from X-Forwarded-For for rate limiting
  3. Logger:      Request logging through zap
  4. Recoverer:   Panic recovery (500 instead of crash)
  5. RequestSize: Caps bodies so a log upload cannot exhaust memory
  6. CORS:        Cross-origin requests for browser clients
  7. Rate limit:  Per-IP requests per second (httprate), optional

ROUTE GROUPS:
  /api/tariff      Tariff inspection
  /api/calls/*     Single-call pricing
  /api/bills       Log billing
  /api/scenarios/* Demo call logs
  /healthz         Liveness

SECURITY NOTE:
  No authentication. Billing is stateless; nothing is stored.

SEE ALSO:
  - handlers.go: Handler implementations
  - scenarios.go: Demo call logs
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RouterConfig tunes the middleware stack.
type RouterConfig struct {
	AllowedOrigins []string
	RateLimit      int   // requests per second per IP, 0 disables
	MaxBodyBytes   int64 // 0 uses DefaultMaxBodyBytes
}

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 8 << 20

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBody))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Second))
	}

	r.Get("/healthz", h.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/tariff", h.GetTariff)

		r.Route("/calls", func(r chi.Router) {
			r.Post("/price", h.PriceCall)
		})

		r.Post("/bills", h.CreateBill)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote", r.RemoteAddr),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
