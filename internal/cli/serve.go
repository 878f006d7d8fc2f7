package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkm94/invoice-dashboard/internal/adapters/cache"
	"github.com/dkm94/invoice-dashboard/internal/adapters/handler"
	"github.com/dkm94/invoice-dashboard/internal/adapters/middleware"
	"github.com/dkm94/invoice-dashboard/internal/adapters/postgres"
	"github.com/dkm94/invoice-dashboard/internal/adapters/security"
	"github.com/dkm94/invoice-dashboard/internal/core/service"
	"github.com/dkm94/invoice-dashboard/internal/worker"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	cfg, logger := a.cfg, a.logger

	logger.Info("starting dashboard service",
		"port", cfg.Server.Port,
		"env", cfg.Primary.Env,
		"log_level", cfg.Logger.Level,
	)

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	defer db.Close()

	if migrate {
		if _, err := applyMigrations(ctx, db, logger); err != nil {
			return err
		}
	}

	invoiceRepo := postgres.NewInvoiceRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	views := cache.NewViewCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	hasher := security.NewBcryptHasher(0)

	invoiceService := service.NewInvoiceService(invoiceRepo, views, logger)
	queryService := service.NewQueryService(invoiceRepo, customerRepo)
	authService := service.NewAuthService(userRepo, sessionRepo, hasher, cfg.Session.TTL, logger)

	h := handler.NewDashboardHandler(
		invoiceService,
		queryService,
		authService,
		views,
		db,
		handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	router := http.Handler(mux)

	router = middleware.Session(authService, cfg.Session.CookieName, logger)(router)
	router = middleware.Recovery(logger)(router)
	router = middleware.Logging(logger)(router)
	router = middleware.Timeout(cfg.Server.WriteTimeout)(router)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweeper := worker.NewSessionSweeper(sessionRepo, cfg.Session.SweepInterval, logger)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go sweeper.Start(workerCtx)
	go views.Run(workerCtx, cfg.Cache.TTL)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		return err
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}
