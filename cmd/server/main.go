package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/techstore/storefront/docs"
	"github.com/techstore/storefront/internal/application/cart"
	"github.com/techstore/storefront/internal/application/catalog"
	"github.com/techstore/storefront/internal/infrastructure/commerce"
	"github.com/techstore/storefront/internal/infrastructure/config"
	"github.com/techstore/storefront/internal/infrastructure/logger"
	"github.com/techstore/storefront/internal/infrastructure/telemetry"
	"github.com/techstore/storefront/internal/interfaces/http/handler"
	"github.com/techstore/storefront/internal/interfaces/http/middleware"
	"github.com/techstore/storefront/internal/interfaces/http/router"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Storefront front end for the commerce API: catalog pages, cart badge, cart pages and checkout.

//	@host		localhost:3000
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	tel, err := setupTelemetry(ctx, cfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Rebuild the logger so entries also reach the OTEL log bridge
	log, err := logger.New(logCfg, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		LoggerProvider: tel.logs,
		Level:          logger.ParseLevel(cfg.Telemetry.LogsExportMinimumLevel),
	}))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("commerce_base_url", cfg.Commerce.BaseURL),
		zap.String("read_failure_policy", cfg.Commerce.ReadFailurePolicy),
	)

	commerceMetrics, err := telemetry.NewCommerceMetrics(tel.metrics.Meter("storefront/commerce"))
	if err != nil {
		log.Fatal("Failed to create commerce metrics", zap.Error(err))
	}
	cartMetrics, err := telemetry.NewCartMetrics(tel.metrics.Meter("storefront/cart"))
	if err != nil {
		log.Fatal("Failed to create cart metrics", zap.Error(err))
	}

	client, err := newCommerceClient(cfg, log, commerceMetrics)
	if err != nil {
		log.Fatal("Failed to create commerce client", zap.Error(err))
	}

	// The badge store lives for the whole process. A failed first fetch
	// leaves the count at zero until the next refresh.
	store := cart.NewStore(client, log, cart.WithStoreMetrics(cartMetrics))
	if err := store.Init(ctx); err != nil {
		log.Warn("Initial cart fetch failed", zap.Error(err))
	}

	views := cart.NewViewRegistry(client, store, cart.RegistryConfig{
		TTL:      cfg.Cart.ViewTTL,
		MaxViews: cfg.Cart.MaxViews,
	}, log, cartMetrics)
	checkout := cart.NewCheckoutSequencer(client, store, cfg.Cart.OrderConfirmationDelay, log, cartMetrics)
	catalogService := catalog.NewService(client, client, store, log)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(store, views, checkout, log)
	systemHandler := handler.NewSystemHandler(telemetry.ServiceVersion, store)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order: request ID, recovery, tracing, logging, headers, limits
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(tel.metrics))
	profilingCfg := middleware.DefaultProfilingConfig()
	profilingCfg.Enabled = tel.profiler.IsEnabled()
	engine.Use(middleware.Profiling(profilingCfg))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORS(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", systemHandler.Health)

	docs.SwaggerInfo.Version = telemetry.ServiceVersion
	docs.SwaggerInfo.Host = "localhost:" + cfg.App.Port
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewStorefrontGroup(catalogHandler, cartHandler)).
		Register(router.NewSystemGroup(systemHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	views.Close()
	store.Teardown()
	tel.shutdown(shutdownCtx, log)

	log.Info("Server exited gracefully")
}

// newCommerceClient builds the commerce API client with the configured read
// failure policy.
func newCommerceClient(cfg *config.Config, log *zap.Logger, metrics *telemetry.CommerceMetrics) (*commerce.Client, error) {
	ccfg := commerce.NewConfig(cfg.Commerce.BaseURL)
	ccfg.Timeout = cfg.Commerce.Timeout

	policy := commerce.PropagateReadFailures()
	if cfg.Commerce.ReadFailurePolicy == config.ReadPolicySubstitute {
		tax := decimal.NewFromFloat(cfg.Commerce.FallbackTaxPercentage)
		policy = commerce.SubstituteOnReadFailure(commerce.NewStaticFallback(tax))
	}

	return commerce.NewClient(ccfg,
		commerce.WithReadFailurePolicy(policy),
		commerce.WithLogger(log),
		commerce.WithMetrics(metrics),
	)
}

type telemetryStack struct {
	traces   *telemetry.TracerProvider
	metrics  *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

// setupTelemetry starts tracing, metrics, the log bridge provider and the
// profiler. Disabled signals get no-op providers.
func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*telemetryStack, error) {
	tc := cfg.Telemetry

	traces, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		SamplingRatio:     tc.SamplingRatio,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	metrics, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ExportInterval:    tc.MetricsExportInterval,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	logs, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           tc.Enabled && tc.LogsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: tc.ServiceName,
	}, log)
	if err != nil {
		return nil, err
	}
	if cfg.Profiling.SpanProfiles && profiler.IsEnabled() {
		if err := traces.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	return &telemetryStack{traces: traces, metrics: metrics, logs: logs, profiler: profiler}, nil
}

func (t *telemetryStack) shutdown(ctx context.Context, log *zap.Logger) {
	if err := t.traces.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := t.metrics.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := t.logs.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
	if err := t.profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
}
