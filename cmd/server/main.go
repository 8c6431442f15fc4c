package main

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"photoframe/application"
	"photoframe/database"
	"photoframe/infrastructure/config"
	"photoframe/infrastructure/photoclient"
	"photoframe/infrastructure/repositories"
	"photoframe/interfaces/web/handlers"
	"photoframe/interfaces/web/presenters"
	templates "photoframe/interfaces/web/templates"
	"photoframe/logging"
	"photoframe/platform/clock"
	"photoframe/platform/notifier"
	"photoframe/platform/scheduler"
)

const startupRefreshTimeout = 10 * time.Second

func main() {
	// Create app-wide context for graceful shutdown
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	logger := initializeLogging(cfg)

	db := initializeDatabase(cfg, logger)
	defer db.Close()

	deps := buildDependencies(cfg, db, logger)

	if err := deps.Scheduler.Start(appCtx); err != nil {
		logger.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer deps.Scheduler.Stop()

	initialRefresh(appCtx, deps)

	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger, deps, appCancel)
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	Diagnostics *application.DiagnosticService
	Renderer    *application.GridRenderer
	Dispatcher  *application.Dispatcher
	Notifier    *notifier.ToastNotifier
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	GridPresenter  *presenters.GridPresenter
	ToastPresenter *presenters.ToastPresenter

	PageHandlers       *handlers.PageHandlers
	ActionHandlers     *handlers.ActionHandlers
	DiagnosticHandlers *handlers.DiagnosticHandlers
	SystemHandlers     *handlers.SystemHandlers
	SSEManager         *handlers.SSEManager
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	DB      *database.Database
	Backend *photoclient.Client
	Logger  *logging.Logger

	Services     *ApplicationServices
	Presentation *PresentationLayer
	Scheduler    *scheduler.RefreshScheduler
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
		"backend_url", cfg.Backend.BaseURL,
		"status_enabled", cfg.StatusEnabled,
	)

	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

func initializeBackend(cfg *config.AppConfig, logger *logging.Logger) *photoclient.Client {
	client, err := photoclient.NewClient(*cfg.Backend, nil)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err, "backend_url", cfg.Backend.BaseURL)
		os.Exit(1)
	}
	return client
}

// buildDependencies wires every layer. The SSE manager is both the toast and
// grid surface, so it is created before the services that push to it.
func buildDependencies(cfg *config.AppConfig, db *database.Database, logger *logging.Logger) *Dependencies {
	backend := initializeBackend(cfg, logger)

	gridPresenter := presenters.NewGridPresenter(cfg.Backend.BaseURL)
	toastPresenter := presenters.NewToastPresenter()
	sseManager := handlers.NewSSEManager(toastPresenter, gridPresenter)

	diagnosticRepo := repositories.NewSqliteDiagnosticRepository(db)
	diagnostics := application.NewDiagnosticService(diagnosticRepo)
	toastNotifier := notifier.NewToastNotifier(*cfg.Toasts, sseManager, clock.Real())
	renderer := application.NewGridRenderer(backend, sseManager, toastNotifier, diagnostics, cfg.StatusEnabled)
	dispatcher := application.NewDispatcher(backend, toastNotifier, renderer, diagnostics)

	schedulerCfg := scheduler.DefaultConfig()
	schedulerCfg.RefreshInterval = cfg.AutoRefreshInterval
	schedulerCfg.DiagnosticRetention = cfg.DiagnosticRetention
	refreshScheduler := scheduler.NewRefreshScheduler(schedulerCfg, renderer, sseManager, diagnostics)

	return &Dependencies{
		DB:      db,
		Backend: backend,
		Logger:  logger,
		Services: &ApplicationServices{
			Diagnostics: diagnostics,
			Renderer:    renderer,
			Dispatcher:  dispatcher,
			Notifier:    toastNotifier,
		},
		Presentation: &PresentationLayer{
			GridPresenter:      gridPresenter,
			ToastPresenter:     toastPresenter,
			PageHandlers:       handlers.NewPageHandlers(sseManager, toastNotifier, gridPresenter, toastPresenter),
			ActionHandlers:     handlers.NewActionHandlers(dispatcher),
			DiagnosticHandlers: handlers.NewDiagnosticHandlers(diagnostics),
			SystemHandlers:     handlers.NewSystemHandlers(db, backend),
			SSEManager:         sseManager,
		},
		Scheduler: refreshScheduler,
	}
}

// initialRefresh loads the grid once so the first page view is populated.
func initialRefresh(appCtx context.Context, deps *Dependencies) {
	ctx, cancel := context.WithTimeout(appCtx, startupRefreshTimeout)
	defer cancel()

	if err := deps.Services.Renderer.RefreshQuietly(ctx); err != nil {
		deps.Logger.Warn("Initial photo load failed, grid will load on next refresh", "error", err)
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	mountStaticAssets(r)
	setupSystemRoutes(r, deps)
	setupApplicationRoutes(r, deps)
	setupActionRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("photoframe", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func mountStaticAssets(r chi.Router) {
	sub, _ := fs.Sub(templates.FS, "assets")
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", deps.Presentation.SystemHandlers.Health)
	r.Get("/diagnostics", deps.Presentation.DiagnosticHandlers.Recent)
	r.Get("/events", deps.Presentation.SSEManager.HandleSSEConnection)
}

func setupApplicationRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/", deps.Presentation.PageHandlers.Home)
	r.Get("/grid", deps.Presentation.PageHandlers.Grid)
}

func setupActionRoutes(r *chi.Mux, deps *Dependencies) {
	actions := deps.Presentation.ActionHandlers
	r.Route("/actions", func(r chi.Router) {
		r.Post("/upload", actions.Upload)
		r.Post("/refresh", actions.Refresh)
		r.Post("/convert/{filename}", actions.Convert)
		r.Post("/display/{filename}", actions.Display)
		r.Post("/delete/{filename}", actions.Delete)
	})
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger, deps *Dependencies, appCancel context.CancelFunc) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		// Cancel app-wide context first to stop background jobs
		appCancel()
		deps.Scheduler.Stop()

		// SSE handlers block until their client goes away
		logger.Info("Closing SSE connections...")
		deps.Presentation.SSEManager.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
