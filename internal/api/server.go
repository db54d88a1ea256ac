package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/badfoxmc/cardano-api/internal/metrics"
)

// NewServer creates an HTTP server with all routes configured. Each request runs
// under requestTimeout; zero disables the deadline.
func NewServer(port string, handler *Handler, m *metrics.Metrics, requestTimeout time.Duration) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Health)
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /wallet/{identifier}", handler.GetWallet)
	mux.HandleFunc("GET /token/{tokenId}", handler.GetToken)
	mux.HandleFunc("GET /token/{tokenId}/owners", handler.GetTokenOwners)
	mux.HandleFunc("GET /token/{tokenId}/market", handler.GetTokenMarket)
	mux.HandleFunc("GET /token/{tokenId}/market/activity", handler.GetTokenMarketActivity)
	mux.HandleFunc("GET /policy/{policyId}", handler.GetPolicy)
	mux.HandleFunc("GET /policy/{policyId}/market", handler.GetPolicyMarket)
	mux.HandleFunc("GET /pool/{poolId}", handler.GetPool)
	mux.HandleFunc("GET /transaction/{transactionId}", handler.GetTransaction)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      cors(withTimeout(requestTimeout, logRequests(m, mux))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "OPTIONS,GET,POST")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withTimeout(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// logRequests logs and counts every request. The route label is the matched mux
// pattern, so it must wrap the mux directly.
func logRequests(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		d := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, rec.status, d)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", d,
		)
	})
}
