package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"studiodesk/pkg/config"
	"studiodesk/pkg/contracts"
	apperrors "studiodesk/pkg/errors"
	httputil "studiodesk/pkg/http"
	kafka_middleware "studiodesk/pkg/kafka/middleware"
	"studiodesk/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg            *config.Config
	server         *http.Server
	publisher      io.Closer
	stats          EventStats
	healthHandler  http.Handler
	appHttpHandler http.Handler
	limiter        *middleware.RateLimiter
	idempotency    middleware.IdempotencyStore
	workers        []Worker
	stopWorkers    context.CancelFunc
}

// Worker runs next to the HTTP server, from Run until shutdown.
type Worker interface {
	Start(ctx context.Context) error
	Close() error
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// WithEvents hands the domain event publisher to the application so it is
// closed on shutdown. metrics feeds /health and is nil when events are off.
func (a *Application) WithEvents(publisher io.Closer, metrics *kafka_middleware.Metrics) *Application {
	a.publisher = publisher
	if metrics != nil {
		a.stats = metrics
	}
	return a
}

func (a *Application) WithWorker(w Worker) *Application {
	a.workers = append(a.workers, w)
	return a
}

func (a *Application) SetApp(appHandler contracts.Handler) {
	a.setHealthHandler()
	a.setAppHandler(appHandler)
	a.setAppServer()
}

// Handler is the full HTTP handler, health routes included.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	NewHealthHandler(a.cfg.Client, a.stats, a.cfg.Log).RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(appHandler contracts.Handler) {
	appRouter := httprouter.New()
	appRouter.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteError(w, apperrors.NotFound("Route "+r.URL.Path))
	})
	appHandler.RegisterRoutes(appRouter)

	// Recovery → Logging → RateLimit → MaxSize → ContentType → Timeout → Idempotency → Router
	var appHttpHandler http.Handler = appRouter
	if a.cfg.IdempotencyTTL > 0 {
		a.idempotency = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
		appHttpHandler = middleware.Idempotency(a.idempotency)(appHttpHandler)
	}
	appHttpHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHttpHandler)
	if a.cfg.RateLimitRequests > 0 {
		a.limiter = middleware.NewRateLimiter(a.cfg.RateLimitRequests, a.cfg.RateLimitWindow, middleware.SessionOrIPKey, a.cfg.Log)
		appHttpHandler = middleware.RateLimit(a.limiter)(appHttpHandler)
	}
	appHttpHandler = middleware.RequestLogging(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.Recovery(a.cfg.Log)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHttpHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	a.startWorkers()

	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) startWorkers() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWorkers = cancel

	for _, w := range a.workers {
		go func(w Worker) {
			err := w.Start(ctx)
			a.cfg.Log.Info("Background worker stopped", "error", err)
		}(w)
	}
}

func (a *Application) closeWorkers() {
	if a.stopWorkers != nil {
		a.stopWorkers()
	}
	for _, w := range a.workers {
		if err := w.Close(); err != nil {
			a.cfg.Log.Error("Failed to close background worker", "error", err)
		}
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.closeWorkers()

	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.idempotency != nil {
		a.idempotency.Stop()
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.cfg.Log.Error("Failed to close event publisher", "error", err)
		} else {
			a.cfg.Log.Info("Event publisher closed")
		}
	}
	a.cfg.GracefulShutdown()

	a.cfg.Log.Info("Server stopped gracefully")
}
