// Package web serves the handlekit UI and JSON API.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/handlekit/binder"
	"github.com/dmitrymomot/handlekit/handler"
	"github.com/dmitrymomot/handlekit/pkg/clientip"
	"github.com/dmitrymomot/handlekit/pkg/httpserver"
	"github.com/dmitrymomot/handlekit/pkg/logger"
	"github.com/dmitrymomot/handlekit/pkg/qrcode"
	"github.com/dmitrymomot/handlekit/pkg/ratelimiter"
	"github.com/dmitrymomot/handlekit/pkg/requestid"
)

// Option configures NewRouter.
type Option func(*handlers)

// WithLogger sets the logger for access logs, errors and handler events.
// Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *handlers) {
		if l != nil {
			h.log = l
		}
	}
}

// WithQRSize sets the default QR image edge in pixels.
func WithQRSize(size int) Option {
	return func(h *handlers) {
		if size > 0 {
			h.qrSize = size
		}
	}
}

// WithClock replaces the salt source used when a request carries no salt.
func WithClock(now func() time.Time) Option {
	return func(h *handlers) {
		if now != nil {
			h.now = now
		}
	}
}

// WithRateLimit throttles the API and QR routes per client address.
// A nil bucket disables throttling.
func WithRateLimit(b *ratelimiter.Bucket) Option {
	return func(h *handlers) { h.limiter = b }
}

// WithTrustProxy makes client address resolution honour forwarding headers.
func WithTrustProxy(trust bool) Option {
	return func(h *handlers) { h.trustProxy = trust }
}

// WithReadinessChecks backs GET /readyz. Without checks it answers "ALIVE".
func WithReadinessChecks(checks ...func(context.Context) error) Option {
	return func(h *handlers) { h.checks = append(h.checks, checks...) }
}

// NewRouter returns the routed application handler.
func NewRouter(opts ...Option) http.Handler {
	h := &handlers{
		log:    logger.Discard(),
		now:    time.Now,
		qrSize: qrcode.DefaultSize,
	}
	for _, opt := range opts {
		opt(h)
	}

	pageErrors := handler.NewErrorHandler(h.log, handler.ErrorHandlerConfig{
		ErrorPage:   errorPage,
		ErrorToast:  errorToast,
		ToastTarget: "#toasts",
	})
	apiErrors := handler.JSONErrorHandler(h.log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(h.trustProxy))
	r.Use(accessLog(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(h.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(h.log, h.checks...))

	r.Get("/", handler.Wrap(h.index,
		handler.WithBinders[handler.Context, suggestRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, suggestRequest](pageErrors),
	))
	r.Get("/suggestions", handler.Wrap(h.suggestions,
		handler.WithBinders[handler.Context, suggestRequest](binder.Query(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, suggestRequest](pageErrors),
		handler.WithDecorators(timed[suggestRequest](h.log, "suggestions")),
	))
	r.Group(func(r chi.Router) {
		r.Use(h.throttle(func(w http.ResponseWriter, r *http.Request) {
			_ = handler.JSONError(handler.ErrTooManyRequests).Render(w, r)
		}))
		r.Get("/api/suggestions", handler.Wrap(h.api,
			handler.WithBinders[handler.Context, suggestRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, suggestRequest](apiErrors),
			handler.WithDecorators(timed[suggestRequest](h.log, "api_suggestions")),
		))
	})
	r.Group(func(r chi.Router) {
		r.Use(h.throttle(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}))
		r.Get("/qr/{platform}/{handle}", handler.Wrap(h.qr,
			handler.WithBinders[handler.Context, qrRequest](binder.Path(chi.URLParam), binder.Query()),
			handler.WithErrorHandler[handler.Context, qrRequest](pageErrors),
		))
	})

	return r
}

// throttle applies the rate limit bucket keyed by client address. It is a
// pass-through when no bucket is configured.
func (h *handlers) throttle(onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	if h.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	limited := func(w http.ResponseWriter, r *http.Request) {
		h.log.WarnContext(r.Context(), "rate limited",
			logger.Event("rate_limited"),
			slog.String("path", r.URL.Path),
		)
		onLimit(w, r)
	}
	key := func(r *http.Request) string { return clientip.FromContext(r.Context()) }
	return ratelimiter.Middleware(h.limiter, key, http.HandlerFunc(limited))
}

// accessLog writes one record per request once the response is complete.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With(logger.Component("http"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.InfoContext(r.Context(), "request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					logger.Duration(time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// timed logs how long the wrapped handler took to build its response.
func timed[R any](log *slog.Logger, event string) handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			start := time.Now()
			resp := next(ctx, req)
			log.DebugContext(ctx, "handled", logger.Event(event), logger.Duration(time.Since(start)))
			return resp
		}
	}
}
