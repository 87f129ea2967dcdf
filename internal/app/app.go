// Package app wires the kiosk server together.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/bluebite-kiosk/internal/api"
	"github.com/xenking/bluebite-kiosk/internal/backend"
	"github.com/xenking/bluebite-kiosk/internal/domain/session"
	"github.com/xenking/bluebite-kiosk/pkg/health"
	"github.com/xenking/bluebite-kiosk/pkg/httpmiddleware"
)

const serviceName = "kiosk-api"

// stack is the assembled HTTP handler and the state it owns.
type stack struct {
	handler http.Handler
	health  *health.Health
	store   *session.Store
}

// newStack builds the backend client, session store, health probes and the
// middleware-wrapped router. Background work stops when ctx is cancelled.
func newStack(ctx context.Context, lg *zap.Logger, tp trace.TracerProvider, mp metric.MeterProvider, cfg *Config) (*stack, error) {
	client, err := backend.New(cfg.BackendURL,
		backend.WithTimeout(cfg.BackendTimeout),
		backend.WithTracerProvider(tp),
		backend.WithMeterProvider(mp),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create backend client")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.Add(health.Probe{
		Name:    "backend",
		Kind:    health.Readiness,
		Check:   health.Reachable("backend", client),
		Timeout: 5 * time.Second,
	})
	healthSvc.Add(health.Probe{
		Name:    "goroutines",
		Kind:    health.Liveness,
		Check:   health.Goroutines(10000),
		Timeout: time.Second,
	})

	// Sessions.
	store := session.NewStore(session.StoreConfig{
		MaxSessions: cfg.Session.MaxSessions,
		TTL:         cfg.Session.TTL,
	}, func(id string) *session.Session {
		return session.New(id, client, client, lg)
	})
	store.StartSweeper(ctx, cfg.Session.SweepInterval, func(removed int) {
		lg.Info("Swept idle sessions", zap.Int("removed", removed), zap.Int("open", store.Len()))
	})

	h, err := api.NewHandler(ctx, api.HandlerConfig{
		CheckoutTimeout: cfg.Session.CheckoutTimeout,
		LoadTimeout:     cfg.Session.LoadTimeout,
	}, store, mp.Meter(serviceName))
	if err != nil {
		return nil, errors.Wrap(err, "create handler")
	}

	// Router: health endpoints + API routes on one server.
	r := chi.NewRouter()
	r.Use(
		httpmiddleware.Labeler(),
		httpmiddleware.LogRequests(),
	)
	r.Get("/livez", healthSvc.LiveEndpoint)
	r.Get("/readyz", healthSvc.ReadyEndpoint)
	r.Mount("/", h.Routes())

	return &stack{
		handler: httpmiddleware.Wrap(r,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", httpmiddleware.RequestIDHeader},
				ExposeHeaders:    []string{httpmiddleware.RequestIDHeader},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(lg),
			httpmiddleware.Instrument(serviceName, tp, mp),
		),
		health: healthSvc,
		store:  store,
	}, nil
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("backend", cfg.BackendURL),
	)

	st, err := newStack(ctx, lg, m.TracerProvider(), m.MeterProvider(), cfg)
	if err != nil {
		return err
	}
	defer st.store.CloseAll()

	healthSvc := st.health
	healthSvc.Start(ctx, 10*time.Second)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		// Checkout waits on the backend; leave room beyond its timeout.
		WriteTimeout:   cfg.Session.CheckoutTimeout + 5*time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
		Addr:           cfg.Addr,
		Handler:        st.handler,
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	healthSvc.SetReady(true)
	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
