// Command api serves the bookstore directory HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"bookmap/internal/common/pagination"
	"bookmap/internal/config"
	pgRepo "bookmap/internal/infra/adapter/persistence/postgres"
	"bookmap/internal/infra/db"
	"bookmap/internal/infra/fetcher"
	"bookmap/internal/observability/logging"
	"bookmap/internal/observability/tracing"

	bookUC "bookmap/internal/usecase/bookstore"
	dirUC "bookmap/internal/usecase/directory"

	hhttp "bookmap/internal/handler/http"
	hauth "bookmap/internal/handler/http/auth"
	hbook "bookmap/internal/handler/http/bookstore"
	hdir "bookmap/internal/handler/http/directory"
	"bookmap/internal/handler/http/middleware"
	"bookmap/internal/handler/http/requestid"
	authservice "bookmap/internal/service/auth"
)

const (
	listenAddr = ":8080"

	// snapshotMaxAge marks the directory snapshot as degraded in health
	// checks when the refresh worker has not rebuilt it within this window.
	snapshotMaxAge = 2 * time.Hour
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	fatal := func(msg string, err error) {
		logger.Error(msg, slog.Any("error", err))
		os.Exit(1)
	}

	if err := checkAuthSecrets(); err != nil {
		fatal("auth configuration rejected", err)
	}

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := db.MigrateUp(database); err != nil {
		fatal("failed to migrate database", err)
	}

	app, err := buildApp(logger, database)
	if err != nil {
		fatal("startup failed", err)
	}
	app.run(logger, database)
}

// checkAuthSecrets rejects startup when the configured accounts or the JWT
// signing secret would be unsafe to serve with.
func checkAuthSecrets() error {
	if err := hauth.ValidateConfiguredUsers(); err != nil {
		return err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	// 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters (256 bits)")
	}
	for _, weak := range []string{"secret", "password", "test", "admin", "default"} {
		if secret == weak || secret == weak+"123" {
			return errors.New("JWT_SECRET must not be a common weak value")
		}
	}
	return nil
}

// credentialPolicy is the password and endpoint policy applied to the user
// list provider. SECURITY_CONFIG may override the defaults from a YAML file.
type credentialPolicy struct {
	MinPasswordLength int
	WeakPasswords     []string
	PublicEndpoints   []string
}

func loadCredentialPolicy(logger *slog.Logger) (credentialPolicy, error) {
	policy := credentialPolicy{
		MinPasswordLength: 12,
		WeakPasswords:     []string{"password", "123456", "admin", "test", "secret"},
		PublicEndpoints:   hauth.PublicEndpoints,
	}

	path := os.Getenv("SECURITY_CONFIG")
	if path == "" {
		return policy, nil
	}

	cfg, err := config.LoadSecurityConfig(path)
	if err != nil {
		return policy, err
	}
	policy.MinPasswordLength = cfg.GetMinPasswordLength()
	if weak := cfg.GetWeakPasswords(); len(weak) > 0 {
		policy.WeakPasswords = weak
	}
	if endpoints := cfg.GetPublicEndpoints(); len(endpoints) > 0 {
		policy.PublicEndpoints = endpoints
	}
	logger.Info("security configuration loaded",
		slog.String("path", path),
		slog.String("provider", cfg.GetAuthProvider()))
	return policy, nil
}

// app bundles the wired HTTP handler with the pieces the run loop manages:
// the directory service for snapshot warming and the auth rate limiter for
// periodic cleanup.
type app struct {
	handler     http.Handler
	dirSvc      *dirUC.Service
	authLimiter *middleware.RateLimiter
	version     string
}

func buildApp(logger *slog.Logger, database *sql.DB) (*app, error) {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}

	fetcherCfg, err := fetcher.LoadConfigFromEnv(logger)
	if err != nil {
		return nil, err
	}

	repo := pgRepo.NewBookstoreRepo(database)
	dirSvc := &dirUC.Service{
		Fetcher: fetcher.NewClient(fetcherCfg, logger),
		Repo:    repo,
		Logger:  logger,
	}
	bookSvc := &bookUC.Service{Repo: repo}

	policy, err := loadCredentialPolicy(logger)
	if err != nil {
		return nil, err
	}
	authProvider := hauth.NewUserListProvider(policy.MinPasswordLength, policy.WeakPasswords)
	authService := authservice.NewAuthService(authProvider, policy.PublicEndpoints)

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		return nil, err
	}
	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (secure mode, proxy headers ignored)")
	}

	// 認証エンドポイントは1分間に5リクエストまで
	authLimiter := middleware.NewRateLimiter(5, 1*time.Minute, ipExtractor)

	mux := http.NewServeMux()
	mux.Handle("/auth/token", authLimiter.Middleware(hauth.TokenHandler(authService)))

	mux.Handle("/health", &hhttp.HealthHandler{
		DB:             database,
		Version:        version,
		Snapshot:       dirSvc,
		SnapshotMaxAge: snapshotMaxAge,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	// Public directory routes mount without auth; the bookstore routes wrap
	// each handler in the auth middleware themselves.
	hdir.Register(mux, dirSvc, pagination.LoadFromEnv(), logger)
	hbook.Register(mux, bookSvc, logger)

	handler, err := wrapMiddleware(logger, mux)
	if err != nil {
		return nil, err
	}
	return &app{handler: handler, dirSvc: dirSvc, authLimiter: authLimiter, version: version}, nil
}

// wrapMiddleware builds the middleware chain around the routes, outermost
// first: CORS, tracing, request ID, recovery, logging, timeout, input
// validation, body limit, then metrics.
func wrapMiddleware(logger *slog.Logger, routes http.Handler) (http.Handler, error) {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		return nil, err
	}
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	h := routes
	for _, wrap := range []func(http.Handler) http.Handler{
		hhttp.MetricsMiddleware,
		hhttp.LimitRequestBody(1 << 20),
		hhttp.InputValidation(),
		hhttp.Timeout(30 * time.Second),
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		requestid.Middleware,
		tracing.Middleware,
		middleware.CORS(*corsConfig),
	} {
		h = wrap(h)
	}
	return h, nil
}

// run serves until SIGINT or SIGTERM, then drains connections.
func (a *app) run(logger *slog.Logger, database *sql.DB) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go db.ReportPoolStats(ctx, database, 30*time.Second)
	go a.sweepRateLimiter(ctx)
	go a.warmSnapshot(ctx, logger)

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", listenAddr),
			slog.String("version", a.version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// sweepRateLimiter drops stale rate limit records every five minutes.
func (a *app) sweepRateLimiter(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.authLimiter.CleanupExpired()
		}
	}
}

// warmSnapshot builds the directory snapshot ahead of the first listing.
// The service also builds lazily, so a failure here only logs.
func (a *app) warmSnapshot(ctx context.Context, logger *slog.Logger) {
	warmCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := a.dirSvc.Refresh(warmCtx); err != nil {
		logger.Warn("initial snapshot refresh failed", slog.Any("error", err))
	}
}
