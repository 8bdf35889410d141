// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/vinculocrm/vinculo/internal/auth"
	"github.com/vinculocrm/vinculo/internal/config"
	"github.com/vinculocrm/vinculo/internal/email"
	"github.com/vinculocrm/vinculo/internal/handler"
	"github.com/vinculocrm/vinculo/internal/installer"
	"github.com/vinculocrm/vinculo/internal/mcpserver"
	"github.com/vinculocrm/vinculo/internal/middleware"
	"github.com/vinculocrm/vinculo/internal/platform/supabase"
	"github.com/vinculocrm/vinculo/internal/platform/vercel"
	"github.com/vinculocrm/vinculo/internal/repository"
	"github.com/vinculocrm/vinculo/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	unitRepo := repository.NewBusinessUnitRepository(db)
	settingRepo := repository.NewChannelSettingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	linkRepo := repository.NewContactLinkRepository(db)
	prefRepo := repository.NewChannelPreferenceRepository(db)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	mailer := email.NewService(cfg)

	// Initialize services
	authService := service.NewAuthService(profileRepo, orgRepo, passwordHasher, tokenManager)
	unitService := service.NewBusinessUnitService(unitRepo)
	channelService := service.NewChannelSettingService(settingRepo, unitRepo, mailer)
	contactService := service.NewContactService(contactRepo)
	linkService := service.NewContactLinkService(linkRepo, contactRepo, unitRepo)
	preferenceService := service.NewChannelPreferenceService(prefRepo, linkRepo, contactRepo)

	// Initialize installer orchestrator with per-run platform clients
	newHosting := func(token, teamID string) installer.HostingAPI {
		return vercel.NewClient(&vercel.Config{BaseURL: cfg.Vercel.BaseURL, Token: token, TeamID: teamID})
	}
	newPlatform := func(accessToken string) installer.DatabasePlatformAPI {
		return supabase.NewClient(&supabase.Config{BaseURL: cfg.Supabase.ManagementURL, AccessToken: accessToken})
	}
	orchestrator := installer.NewOrchestrator(newHosting, newPlatform, passwordHasher, logger)

	newSupabase := func(accessToken string) *supabase.Client {
		return supabase.NewClient(&supabase.Config{BaseURL: cfg.Supabase.ManagementURL, AccessToken: accessToken})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	unitHandler := handler.NewBusinessUnitHandler(unitService, channelService)
	contactHandler := handler.NewContactHandler(linkService, preferenceService)
	installerHandler := handler.NewInstallerHandler(cfg.Installer.Enabled, cfg.Installer.Token != "", orchestrator, newSupabase)

	// Initialize MCP surface
	mcpHandler := mcpserver.NewHTTPHandler(
		mcpserver.New(unitService, channelService, contactService, linkService, preferenceService),
		cfg.MCP.APIKey,
	)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SameOrigin(cfg.Server.AllowedOrigins))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// MCP streamable HTTP surface
	r.Handle("/api/mcp", mcpHandler)
	r.Handle("/api/mcp/*", mcpHandler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))
				r.Post("/login", authHandler.LoginHandler)
			})
		})

		// Installer routes, guarded by the installer token rather than a session
		r.Route("/installer", func(r chi.Router) {
			r.Get("/meta", installerHandler.MetaHandler)

			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))
				r.Use(middleware.InstallerGuard(cfg.Installer.Enabled, cfg.Installer.Token))

				r.Post("/supabase/projects", installerHandler.ListProjectsHandler)
				r.Post("/supabase/organizations", installerHandler.ListOrganizationsHandler)
				r.Post("/supabase/create-project", installerHandler.CreateProjectHandler)
				r.Post("/supabase/functions", installerHandler.ListEdgeFunctionsHandler)
				r.Post("/supabase/resolve", installerHandler.ResolveHandler)
				r.Post("/run", installerHandler.RunHandler)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(tokenManager, authService))

			r.Get("/auth/me", authHandler.MeHandler)

			// Business unit settings, admin only
			r.Route("/settings/business-units", func(r chi.Router) {
				r.Get("/", unitHandler.ListHandler)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Use(chimw.AllowContentType("application/json"))

					r.Post("/", unitHandler.CreateHandler)
					r.Post("/{unitID}/toggle", unitHandler.ToggleActiveHandler)
					r.Post("/{unitID}/channels", unitHandler.UpsertChannelHandler)
					r.Post("/{unitID}/channels/test", unitHandler.SendTestHandler)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/{unitID}/channels", unitHandler.GetChannelsHandler)
				})
			})

			// Contact relationship routes
			r.Route("/contacts/{contactID}", func(r chi.Router) {
				r.Get("/business-units", contactHandler.GetLinksHandler)
				r.Get("/channel-preferences", contactHandler.GetPreferencesHandler)

				r.Group(func(r chi.Router) {
					r.Use(chimw.AllowContentType("application/json"))
					r.Put("/business-units", contactHandler.SetLinksHandler)
					r.Put("/channel-preferences", contactHandler.SetPreferencesHandler)
				})
			})
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
