// Package server wires the registry together: storage, services, the REST
// router and the gRPC health endpoint, with graceful shutdown on signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/server/config"
	"github.com/dmitrijs2005/docverifier/internal/server/health"
	"github.com/dmitrijs2005/docverifier/internal/server/metrics"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/documents"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docverifier/internal/server/rest"
	"github.com/dmitrijs2005/docverifier/internal/server/services"
	"github.com/dmitrijs2005/docverifier/internal/server/tracer"
	"github.com/dmitrijs2005/docverifier/internal/timex"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/docverifier/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	handler     http.Handler
}

// NewApp connects to PostgreSQL, applies migrations and builds the API.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, rm, tracer.NewOTel(nil)), nil
}

// NewMockApp serves the same API over an in-memory registry seeded with the
// sample documents.
func NewMockApp(c *config.Config, logger logging.Logger) *App {
	today := timex.DateOf(time.Now())
	rm := repomanager.NewMemoryRepositoryManager(documents.SampleDocuments(today)...)
	return newApp(c, logger, rm, tracer.NewNoop())
}

func newApp(c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager, t tracer.Tracer) *App {
	m := metrics.New(prometheus.NewRegistry())

	ds := services.NewDocumentService(rm, c, logger, services.WithTracer(t), services.WithMetrics(m))
	as := services.NewAttachmentService(rm, c, logger, t)

	hh := health.New(c.Environment)
	hh.RegisterCheck("database", rm.Ping)

	handler := rest.NewRouter(rest.NewHandler(ds, as, logger), hh, m, logger, rest.RouterConfig{
		AdminSecret:    []byte(c.SecretKey),
		AllowedOrigins: c.AllowedOrigins,
		RequestTimeout: c.RequestTimeout,
	})

	return &App{config: c, logger: logger, repomanager: rm, handler: handler}
}

// Handler returns the HTTP API.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.repomanager.Ping)
	return s.Run(ctx)
}

// Run serves HTTP and gRPC until ctx is cancelled or a signal arrives. A
// failure of either server stops the other.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.startHTTPServer(gctx)
	})

	if app.config.EndpointAddrGRPC != "" {
		g.Go(func() error {
			return app.startGRPCServer(gctx)
		})
	}

	err := g.Wait()

	if cerr := app.repomanager.Close(); cerr != nil {
		app.logger.Error(ctx, "close storage", "error", cerr)
	}

	return err
}
