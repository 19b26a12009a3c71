// Package http exposes the expense API over JSON.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"habitcheck/internal/middleware/ratelimit"
	"habitcheck/internal/middleware/security"
	"habitcheck/internal/middleware/trace"
	"habitcheck/internal/services"
	"habitcheck/internal/storage"
)

type Server struct {
	http.Server

	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// limiter guards the write endpoints and is stopped on Shutdown.
func NewServer(addr string, expenses *services.ExpenseService, stats *services.StatsService, store storage.Store, limiter *ratelimit.Limiter) *Server {
	h := &handlers{expenses: expenses, stats: stats, store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /readyz", h.readyz)

	s := &Server{limiter: limiter}

	mux.Handle("POST /api/expenses/add", s.withWriteLimit(h.addExpense))
	mux.HandleFunc("GET /api/expenses/all", h.listExpenses)
	mux.Handle("PUT /api/expenses/{id}", s.withWriteLimit(h.updateExpense))
	mux.Handle("DELETE /api/expenses/{id}", s.withWriteLimit(h.deleteExpense))
	mux.HandleFunc("GET /api/expenses/stats/summary", h.summary)
	mux.HandleFunc("GET /api/expenses/stats/recent", h.recent)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(clientIP)

	var handler http.Handler = mux
	handler = corsMiddleware(handler)
	handler = headers.Middleware(handler)
	handler = tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// withWriteLimit applies per-client rate limiting to mutating endpoints.
func (s *Server) withWriteLimit(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil {
			ip := clientIP(r)
			if !s.limiter.Allow(ip) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", ip,
					"method", r.Method,
					"path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				respondError(r.Context(), w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
				return
			}
		}
		next(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the caller address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// Shutdown stops the rate limiter and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		err = s.Server.Shutdown(ctx)
	})
	return err
}
