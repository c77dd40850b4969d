package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"docshare/internal/access"
	"docshare/internal/auth"
	"docshare/internal/config"
	"docshare/internal/handler"
	"docshare/internal/middleware"
	"docshare/internal/ratelimit"
	"docshare/internal/repository/postgres"
	"docshare/internal/service"
	"docshare/internal/upstream"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"backend_url", cfg.BackendURL,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Token verification: shared secret when configured, JWKS otherwise
	var jwtVerifier auth.JWTVerifier
	if cfg.JWTSecret != "" {
		jwtVerifier, err = auth.NewSecretVerifier(cfg.JWTSecret, logger)
	} else {
		jwtVerifier, err = auth.NewJWKSVerifier(ctx, cfg.JWKSURL, logger)
	}
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}
	logger.Info("database connected", "view_states", tables.ViewStates)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	viewStateRepo := postgres.NewViewStateRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	roles, err := access.LoadCapabilities()
	if err != nil {
		log.Fatalf("Failed to load role capabilities: %v", err)
	}
	resolver := access.NewResolver(roles)

	backend := upstream.NewClient(cfg.BackendURL, cfg.BackendTimeout, logger)

	// Services
	viewStateService := service.NewViewStateService(viewStateRepo, txManager, logger)
	folderService := service.NewFolderService(backend, viewStateService, resolver, logger)
	docService := service.NewDocumentService(backend, logger)
	shareService := service.NewShareService(backend, backend, backend, logger)
	tagService := service.NewTagService(backend, logger)
	adminService := service.NewAdminService(backend, logger)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	shareHandler := handler.NewShareHandler(shareService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	adminHandler := handler.NewAdminHandler(adminService, logger)
	viewStateHandler := handler.NewViewStateHandler(viewStateService, logger)
	sessionHandler := handler.NewSessionHandler(resolver)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/folders/tree", folderHandler.GetTree) // Must come before {id} route
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/contents", folderHandler.GetContents)

	// Folder sharing
	mux.HandleFunc("GET /api/folders/{id}/share/departments", shareHandler.GetFolderDepartments)
	mux.HandleFunc("PUT /api/folders/{id}/share/departments", shareHandler.ShareFolderWithDepartments)
	mux.HandleFunc("GET /api/folders/{id}/share/users", shareHandler.GetFolderUsers)
	mux.HandleFunc("PUT /api/folders/{id}/share/users", shareHandler.ShareFolderWithUsers)

	// Document routes
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("PUT /api/documents/{id}/star", docHandler.StarDocument)
	mux.HandleFunc("POST /api/documents/upload", docHandler.UploadDocument)
	mux.HandleFunc("GET /api/documents/{id}/download", docHandler.DownloadDocument)
	mux.HandleFunc("GET /api/documents/{id}/view", docHandler.ViewDocument)
	mux.HandleFunc("GET /api/documents/{id}/share", shareHandler.GetDocumentShare)
	mux.HandleFunc("PUT /api/documents/{id}/share", shareHandler.ShareDocument)

	// Directory
	mux.HandleFunc("GET /api/users", shareHandler.ListUsers)
	mux.HandleFunc("GET /api/share/candidates", shareHandler.Candidates)

	// Tag routes
	mux.HandleFunc("GET /api/tags", tagHandler.ListTags)
	mux.HandleFunc("POST /api/tags", tagHandler.CreateTag)
	mux.HandleFunc("PATCH /api/tags/{id}", tagHandler.UpdateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", tagHandler.DeleteTag)

	// Admin routes
	mux.HandleFunc("GET /api/admin/departments", adminHandler.ListDepartments)
	mux.HandleFunc("POST /api/admin/departments", adminHandler.CreateDepartment)
	mux.HandleFunc("PATCH /api/admin/departments/{id}", adminHandler.UpdateDepartment)
	mux.HandleFunc("DELETE /api/admin/departments/{id}", adminHandler.DeleteDepartment)
	mux.HandleFunc("GET /api/admin/employees", adminHandler.ListEmployees)
	mux.HandleFunc("POST /api/admin/employees", adminHandler.CreateEmployee)
	mux.HandleFunc("PATCH /api/admin/employees/{id}", adminHandler.UpdateEmployee)
	mux.HandleFunc("DELETE /api/admin/employees/{id}", adminHandler.DeleteEmployee)

	// Session routes
	mux.HandleFunc("GET /api/users/me/capabilities", sessionHandler.GetCapabilities)

	// View state routes
	mux.HandleFunc("GET /api/users/me/view-state", viewStateHandler.GetViewState)
	mux.HandleFunc("PATCH /api/users/me/view-state", viewStateHandler.UpdateViewState)
	mux.HandleFunc("POST /api/users/me/view-state/expanded/{id}", viewStateHandler.ToggleExpanded)

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
	defer limiter.Stop()

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Recovery → Auth → RateLimit → Routes
	h = middleware.RateLimit(limiter, logger)(h)
	h = middleware.AuthMiddleware(jwtVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID()(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
