package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/config"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/handler"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/logging"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/moderation"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/portfolio"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/repository"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/service"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/telemetry"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal("server error", "error", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	store, err := repository.Open(ctx, cfg.StoreDriver, cfg.StoreDSN())
	if err != nil {
		return err
	}
	defer store.Close()

	catalog, err := portfolio.Load(cfg.ContentPath)
	if err != nil {
		return err
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	limiter := handler.NewRateLimiter(cfg.ContactRateLimit)
	defer limiter.Close()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(cfg, store, catalog, renderer, limiter),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", srv.Addr, "store", cfg.StoreDriver, "admin_view", cfg.AdminViewEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// newRouter wires every route and the middleware chain.
func newRouter(cfg config.Config, store *repository.Store, catalog *portfolio.Catalog, renderer *web.Renderer, limiter *handler.RateLimiter) http.Handler {
	submissionService := service.NewSubmissionService(store.Submissions)
	dashboard := moderation.New(submissionService, slog.Default())

	h := handler.New(store.DB, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(submissionService)
	portfolioHandler := handler.NewPortfolioHandler(catalog)
	site := handler.NewSiteHandler(handler.SiteConfig{
		Submitter:    submissionService,
		Dashboard:    dashboard,
		Catalog:      catalog,
		Renderer:     renderer,
		AdminEnabled: cfg.AdminViewEnabled,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/portfolio", portfolioHandler.Get)
	mux.Handle("POST /api/contact", limiter.Middleware(http.HandlerFunc(contactHandler.Submit)))

	// Admin API: unauthenticated, like the ?admin=true page gate
	mux.Handle("GET /api/admin/submissions", site.AdminOnly(contactHandler.AdminList))
	mux.Handle("PATCH /api/admin/submissions/{id}", site.AdminOnly(contactHandler.AdminUpdate))
	mux.Handle("DELETE /api/admin/submissions/{id}", site.AdminOnly(contactHandler.AdminDelete))

	// Pages
	mux.Handle("GET /static/", web.Static())
	mux.HandleFunc("GET /{$}", site.Index)
	mux.Handle("POST /contact", limiter.MiddlewareWith(http.HandlerFunc(site.Contact), site.RateLimited))
	mux.Handle("POST /admin/submissions/{id}/read", site.AdminOnly(site.ToggleRead))
	mux.Handle("GET /admin/submissions/{id}/delete", site.AdminOnly(site.ConfirmDelete))
	mux.Handle("POST /admin/submissions/{id}/delete", site.AdminOnly(site.Delete))
	mux.Handle("POST /admin/refresh", site.AdminOnly(site.Refresh))

	return handler.Tracing(handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))))
}
