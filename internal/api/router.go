package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RouterOption configures the behaviour of NewRouter.
type RouterOption func(*routerConfig)

// WithLogging controls whether access logs are emitted.
func WithLogging(enabled bool) RouterOption {
	return func(cfg *routerConfig) {
		cfg.enableLogging = enabled
	}
}

// WithRateLimit configures the token bucket. A zero rate or burst disables limiting.
func WithRateLimit(rps float64, burst int) RouterOption {
	return func(cfg *routerConfig) {
		if rps <= 0 || burst <= 0 {
			cfg.rateLimiter = nil
			return
		}
		cfg.rateLimiter = newTokenBucketLimiter(rps, burst)
	}
}

// WithRateLimiter overrides the default request rate limiter (primarily for tests).
func WithRateLimiter(limiter rateLimiter) RouterOption {
	return func(cfg *routerConfig) {
		cfg.rateLimiter = limiter
	}
}

type routerConfig struct {
	enableLogging bool
	logger        *zap.Logger
	rateLimiter   rateLimiter
}

// NewRouter creates an HTTP router with standard middleware.
func NewRouter(handler *Handler, logger *zap.Logger, opts ...RouterOption) http.Handler {
	cfg := routerConfig{
		enableLogging: true,
		logger:        logger,
		rateLimiter:   newTokenBucketLimiter(25, 50),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/health", http.HandlerFunc(handler.handleHealth))
	mux.Handle("GET /api/containers", http.HandlerFunc(handler.handleGetContainers))
	mux.Handle("PUT /api/containers", http.HandlerFunc(handler.handlePutContainers))
	mux.Handle("POST /api/plan", http.HandlerFunc(handler.handlePlan))

	var root http.Handler = mux
	root = corsMiddleware(root)
	root = recoveryMiddleware(cfg.logger, root)
	if cfg.enableLogging {
		root = loggingMiddleware(cfg.logger, root)
	}
	root = rateLimitMiddleware(cfg.rateLimiter, root)
	root = requestIDMiddleware(root)

	return root
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Requested-With,X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
	})
}

func recoveryMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					zap.Any("error", rec),
					zap.String("request_id", requestIDFromContext(r.Context())),
				)
				writeError(w, http.StatusInternalServerError, "Internal error", "unexpected server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := contextWithRequestID(r.Context(), requestID)

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
