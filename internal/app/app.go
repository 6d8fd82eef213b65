package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pokenihongo/admin-console/internal/adapter/pokeapi"
	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/internal/catalog"
	"github.com/pokenihongo/admin-console/internal/config"
	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/listing"
	"github.com/pokenihongo/admin-console/internal/query"
	"github.com/pokenihongo/admin-console/internal/transport/middleware"
	"github.com/pokenihongo/admin-console/internal/transport/rest"
	"github.com/pokenihongo/admin-console/pkg/ctxutil"
)

// ErrUnverifiedSessions is returned when the HTTP gateway is started
// without a token signing secret. Cached pages are shared between callers,
// so the gateway must be able to trust the role a token claims.
var ErrUnverifiedSessions = errors.New("auth.jwt_secret is required to serve http")

// App holds the components shared by every front end.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Client   *pokeapi.Client
	Decoder  *auth.Decoder
	Registry *catalog.Registry
	Metrics  *prometheus.Registry
}

// New wires the backend client, session decoder and screen registry.
func New(cfg *config.Config, logger *slog.Logger) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client := pokeapi.NewClient(cfg.API, logger)
	registry := catalog.NewRegistry(logger, client, catalog.Screens(), query.Options{
		Size:           cfg.Cache.Size,
		TTL:            cfg.Cache.TTL,
		MaxConcurrency: cfg.Cache.MaxConcurrency,
		Wait:           cfg.Cache.BatchWait,
		LoadTimeout:    cfg.Cache.LoadTimeout,
	}, query.NewMetrics(reg))

	return &App{
		Config:   cfg,
		Log:      logger,
		Client:   client,
		Decoder:  auth.NewDecoder(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		Registry: registry,
		Metrics:  reg,
	}
}

// Session decodes the operator's token for the terminal front ends. An
// empty token falls back to the configured API token.
func (a *App) Session(ctx context.Context, token string) (context.Context, auth.Session, error) {
	if token == "" {
		token = a.Config.API.Token
	}
	if token == "" {
		return ctx, auth.Session{}, fmt.Errorf("%w: no token given", domain.ErrUnauthorized)
	}
	s, err := a.Decoder.Decode(token)
	if err != nil {
		return ctx, auth.Session{}, err
	}
	ctx = auth.WithSession(ctx, s)
	ctx = ctxutil.WithBearerToken(ctx, token)
	return ctx, s, nil
}

// ListingOptions returns controller options with the configured defaults.
func (a *App) ListingOptions(locale string) listing.Options {
	if locale == "" {
		locale = a.Config.API.Locale
	}
	return listing.Options{
		Locale:          locale,
		InitialPageSize: a.Config.Listing.DefaultPageSize,
	}
}

// Handler builds the HTTP gateway with its middleware chain. The returned
// stop function releases the rate limiter.
func (a *App) Handler() (http.Handler, func(), error) {
	if !a.Decoder.Verifies() {
		return nil, nil, ErrUnverifiedSessions
	}

	limiter := middleware.NewRateLimiter(a.Config.RateLimit.MutationsPerMinute, a.Config.RateLimit.Burst, time.Minute)

	rt := rest.Router{
		Screens: rest.NewScreensHandler(a.Registry, rest.PagingConfig{
			DefaultPageSize: a.Config.Listing.DefaultPageSize,
			PageSizeOptions: a.Config.Listing.PageSizeOptions,
			MaxVisiblePages: a.Config.Listing.MaxVisiblePages,
		}, a.Log),
		Health:         rest.NewHealthHandler(a.Client, a.Registry, BuildVersion()),
		MetricsHandler: promhttp.HandlerFor(a.Metrics, promhttp.HandlerOpts{Registry: a.Metrics}),
		HTTPMetrics:    middleware.NewHTTPMetrics(a.Metrics),
		Mutations:      limiter.Mutations(),
	}

	h := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(a.Log),
		middleware.Recovery(a.Log),
		middleware.CORS(a.Config.CORS),
		middleware.Locale(a.Config.API.Locale),
		middleware.Auth(a.Decoder),
	)(rt.Handler())

	return h, limiter.Stop, nil
}

// Serve runs the HTTP gateway until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	handler, stop, err := a.Handler()
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	defer stop()

	cfg := a.Config.Server
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.String("version", BuildVersion()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
