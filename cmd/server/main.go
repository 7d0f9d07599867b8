package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/janisto/intern-portal/internal/http/health"
	profilehttp "github.com/janisto/intern-portal/internal/http/v1/profile"
	"github.com/janisto/intern-portal/internal/http/v1/routes"
	"github.com/janisto/intern-portal/internal/platform/auth"
	"github.com/janisto/intern-portal/internal/platform/config"
	"github.com/janisto/intern-portal/internal/platform/firebase"
	applog "github.com/janisto/intern-portal/internal/platform/logging"
	appmiddleware "github.com/janisto/intern-portal/internal/platform/middleware"
	"github.com/janisto/intern-portal/internal/platform/respond"
	activitysvc "github.com/janisto/intern-portal/internal/service/activity"
	avatarsvc "github.com/janisto/intern-portal/internal/service/avatar"
	overviewsvc "github.com/janisto/intern-portal/internal/service/overview"
	profilesvc "github.com/janisto/intern-portal/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiPrefix = "/v1"
	docsPath  = "/api-docs"
)

type serverDeps struct {
	verifier    auth.Verifier
	services    routes.Services
	corsOrigins []string
	ready       map[string]health.Checker
}

func newRouter(deps serverDeps) *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(apiPrefix+docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(deps.corsOrigins...),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		chimiddleware.RealIP,
		// Avatar uploads are the largest bodies the API accepts.
		chimiddleware.RequestSize(profilehttp.AvatarMaxBodyBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)
	router.Get("/ready", health.Ready(deps.ready))

	router.Route(apiPrefix, func(r chi.Router) {
		cfg := huma.DefaultConfig("Intern Portal API", Version)
		cfg.DocsPath = docsPath
		cfg.Servers = []*huma.Server{{URL: apiPrefix}}
		cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}
		api := humachi.New(r, cfg)

		api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)

		routes.Register(api, deps.verifier, deps.services)
	})

	return router
}

// addCBORContent advertises CBOR next to JSON for every request and response body.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

func firestoreCheck(client *firestore.Client) health.Checker {
	return func(ctx context.Context) error {
		_, err := client.Collection(profilesvc.Collection).Limit(1).Documents(ctx).Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		return err
	}
}

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	clients, err := firebase.InitializeClients(initCtx, firebase.Config{
		ProjectID:                    cfg.ProjectID,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
		AvatarBucket:                 cfg.AvatarBucket,
	})
	cancelInit()
	if err != nil {
		applog.LogFatal(context.Background(), "firebase init failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(context.Background(), "firebase close error", err)
		}
	}()

	profiles := profilesvc.NewFirestoreStore(clients.Firestore)
	activities := activitysvc.NewFirestoreStore(clients.Firestore)
	avatars := avatarsvc.NewGCSStore(clients.Avatars, cfg.AvatarBucket, cfg.AvatarBaseURL)

	router := newRouter(serverDeps{
		verifier: auth.NewFirebaseVerifier(clients.Auth),
		services: routes.Services{
			Profiles: profiles,
			Activity: activities,
			Avatars:  avatarsvc.NewService(avatars, profiles),
			Overview: overviewsvc.NewService(profiles, activities, cfg.ReportsRequired),
		},
		corsOrigins: cfg.CORSAllowedOrigins,
		ready: map[string]health.Checker{
			"firestore": firestoreCheck(clients.Firestore),
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr),
			zap.String("project", cfg.ProjectID),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		applog.LogError(ctx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}
