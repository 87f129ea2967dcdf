// Package api exposes kiosk ordering sessions over HTTP as JSON.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/bluebite-kiosk/internal/domain/session"
)

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// CheckoutTimeout bounds an order submission. The submission is detached
	// from the client connection so a closed tab cannot abort it half-way.
	CheckoutTimeout time.Duration
	// LoadTimeout bounds a menu load started by session creation or reload.
	LoadTimeout time.Duration
}

// Handler serves the session API. Menu loads run in the background on the
// context given to NewHandler, so cancelling it stops them.
type Handler struct {
	ctx      context.Context
	cfg      HandlerConfig
	sessions *session.Store
	metrics  *metrics
}

// NewHandler constructs a Handler over the given session store.
func NewHandler(ctx context.Context, cfg HandlerConfig, sessions *session.Store, meter metric.Meter) (*Handler, error) {
	if cfg.CheckoutTimeout <= 0 {
		cfg.CheckoutTimeout = 30 * time.Second
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 30 * time.Second
	}

	m, err := newMetrics(meter, sessions)
	if err != nil {
		return nil, errors.Wrap(err, "create metrics")
	}

	return &Handler{
		ctx:      ctx,
		cfg:      cfg,
		sessions: sessions,
		metrics:  m,
	}, nil
}

// Routes returns the router for everything under /api.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/reload", h.Reload)
			r.Put("/category", h.SelectCategory)
			r.Post("/cart", h.AddItem)
			r.Post("/cart/{itemID}/increment", h.Increment)
			r.Post("/cart/{itemID}/decrement", h.Decrement)
			r.Post("/checkout", h.Checkout)
		})
	})
	return r
}
