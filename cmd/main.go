package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"todobackend/clients/identity"
	"todobackend/config"
	"todobackend/db"
	"todobackend/handlers"
	"todobackend/metrics"
	"todobackend/middleware"
	"todobackend/services"
	"todobackend/services/subscriptions"
	"todobackend/services/todos"
	"todobackend/services/txmanager"
	"todobackend/services/users"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "todobackend",
		LogsURL:     cfg.ServerLogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(dbConn, cfg.DatabaseURL, cfg.DatabaseSchema); err != nil {
			return err
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Initialize repositories with shared connection
	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	todosRepo := db.NewPostgresTodosRepository(dbConn, cfg.DatabaseSchema)

	txManager := txmanager.NewTransactionManager(dbConn)

	usersService := users.NewUsersService(usersRepo)
	todosService := todos.NewTodosService(todosRepo, usersRepo, txManager, collector)
	subscriptionsService := subscriptions.NewSubscriptionsService(usersRepo, collector)

	identityProvider, err := identity.NewProvider(context.Background(), cfg)
	if err != nil {
		return err
	}

	authMiddleware := middleware.NewAuthMiddleware(identityProvider)
	rateLimiter := middleware.NewRateLimiter(middleware.NewRateLimiterConfig(
		cfg.RateLimitConfig.RequestsPerMinute,
		cfg.RateLimitConfig.Burst,
	))
	defer rateLimiter.Stop()

	protectedAPI := func(next http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.WithAuth(rateLimiter.WithRateLimit(next))
	}

	router := mux.NewRouter()
	router.Use(collector.Middleware)

	router.HandleFunc("/health", handlers.HandleHealth).Methods("GET")
	router.Handle("/metrics", metrics.Handler(registry)).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	handlers.NewUsersHandler(usersService, alertMiddleware).SetupEndpoints(apiRouter, protectedAPI)
	handlers.NewTodosHandler(todosService, alertMiddleware).SetupEndpoints(apiRouter, protectedAPI)
	handlers.NewSubscriptionsHandler(subscriptionsService, alertMiddleware).SetupEndpoints(apiRouter, protectedAPI)
	handlers.SetupAPIFallbacks(apiRouter)

	// Everything else is a page, served behind the route gate
	routeGate := middleware.NewRouteGate(middleware.DefaultGateConfig(), identityProvider)
	router.PathPrefix("/").Handler(routeGate.Middleware(handlers.NewPagesHandler(cfg.PagesDir)))
	if cfg.PagesDir == "" {
		log.Printf("⚠️ PAGES_DIR not set - page routes will be gated but answer 404")
	}

	stopSweeper := startSubscriptionSweeper(subscriptionsService, alertMiddleware, cfg.SubscriptionSweepInterval)
	defer stopSweeper()

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

// startSubscriptionSweeper periodically clears elapsed subscriptions until the
// returned stop function is called.
func startSubscriptionSweeper(
	subscriptionsService services.SubscriptionsService,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	interval time.Duration,
) func() {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(interval)
	sweep := alertMiddleware.WrapBackgroundTask("ExpireSubscriptions", func() error {
		_, err := subscriptionsService.ExpireSubscriptions(ctx)
		return err
	})

	go func() {
		for {
			select {
			case <-ticker.C:
				_ = sweep()
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("⏰ Subscription sweeper started (interval: %s)", interval)
	return func() {
		ticker.Stop()
		cancel()
	}
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Printf("❌ Server error: %v", err)
		return err
	case <-stop:
	}
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
