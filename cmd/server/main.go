package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	availabilityapp "github.com/travelhub/backend/internal/application/availability"
	bookingapp "github.com/travelhub/backend/internal/application/booking"
	catalogapp "github.com/travelhub/backend/internal/application/catalog"
	contentapp "github.com/travelhub/backend/internal/application/content"
	identityapp "github.com/travelhub/backend/internal/application/identity"
	mediaapp "github.com/travelhub/backend/internal/application/media"
	"github.com/travelhub/backend/internal/application/notification"
	offerapp "github.com/travelhub/backend/internal/application/offer"
	reviewapp "github.com/travelhub/backend/internal/application/review"
	seoapp "github.com/travelhub/backend/internal/application/seo"
	tenantapp "github.com/travelhub/backend/internal/application/tenant"
	wishlistapp "github.com/travelhub/backend/internal/application/wishlist"
	"github.com/travelhub/backend/internal/domain/tenant"
	"github.com/travelhub/backend/internal/infrastructure/auth"
	"github.com/travelhub/backend/internal/infrastructure/cache"
	"github.com/travelhub/backend/internal/infrastructure/config"
	"github.com/travelhub/backend/internal/infrastructure/event"
	"github.com/travelhub/backend/internal/infrastructure/logger"
	"github.com/travelhub/backend/internal/infrastructure/mail"
	"github.com/travelhub/backend/internal/infrastructure/persistence"
	"github.com/travelhub/backend/internal/infrastructure/storage"
	"github.com/travelhub/backend/internal/infrastructure/telemetry"
	"github.com/travelhub/backend/internal/interfaces/http/handler"
	"github.com/travelhub/backend/internal/interfaces/http/middleware"
	"github.com/travelhub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// tenantConfigL1TTL bounds how long an instance serves a tenant config
// from its local copy after another instance changed it
const tenantConfigL1TTL = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TravelHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()
	production := cfg.App.IsProduction()

	// Telemetry
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = logsProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.Profiling.Enabled,
		ServerAddress:     cfg.Telemetry.Profiling.ServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.Profiling.BasicAuthPassword,
		ProfileTypes:      cfg.Telemetry.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled,
		LogFullSQL:      !production,
		SlowQueryThresh: cfg.Database.SlowThreshold,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Redis backed stores; development tolerates a missing Redis
	cacheFactory, err := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!production),
	)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer func() {
		if err := cacheFactory.Close(); err != nil {
			log.Error("Error closing redis", zap.Error(err))
		}
	}()

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	tourRepo := persistence.NewGormTourRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	destinationRepo := persistence.NewGormDestinationRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	availabilityRepo := persistence.NewGormAvailabilityRepository(db.DB)
	stopSaleRepo := persistence.NewGormStopSaleRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	heroRepo := persistence.NewGormHeroSlideRepository(db.DB)
	blogRepo := persistence.NewGormBlogPostRepository(db.DB)

	// Tenants
	fallback := tenant.Config{
		Key:    cfg.Tenant.DefaultKey,
		Name:   cfg.Tenant.FallbackName,
		Domain: cfg.Tenant.FallbackDomain,
		Branding: tenant.Branding{
			SiteName:       cfg.Tenant.FallbackName,
			LogoURL:        cfg.Tenant.FallbackLogoURL,
			PrimaryColor:   cfg.Tenant.PrimaryColor,
			SecondaryColor: cfg.Tenant.SecondaryColor,
		},
		Contact:  tenant.Contact{Email: cfg.Tenant.ContactEmail},
		Currency: cfg.Tenant.Currency,
		Locale:   cfg.Tenant.Locale,
	}
	tenantService := tenantapp.NewTenantService(
		tenantRepo,
		tourRepo,
		cacheFactory.Cache("tenant:", tenantConfigL1TTL),
		cfg.Tenant.CacheTTL,
		fallback,
		log,
	)

	// Identity
	jwtService := auth.NewJWTService(cfg.JWT)
	var firebase auth.IDTokenVerifier
	if cfg.Firebase.Enabled {
		verifier, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase)
		if err != nil {
			log.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
		firebase = verifier
	}
	authService := identityapp.NewAuthService(
		userRepo,
		jwtService,
		auth.NewTokenBlacklist(cacheFactory.Client()),
		firebase,
		log,
	)

	// Catalog and sales
	tourService := catalogapp.NewTourService(tourRepo, categoryRepo, destinationRepo, offerRepo, tenantService, log)
	taxonomyService := catalogapp.NewTaxonomyService(categoryRepo, destinationRepo, log)
	offerService := offerapp.NewOfferService(offerRepo, tourService, log)
	availabilityService := availabilityapp.NewAvailabilityService(availabilityRepo, stopSaleRepo, tourService, log)
	bookingService := bookingapp.NewBookingService(
		bookingRepo,
		tourRepo,
		tourService,
		availabilityService,
		offerService,
		cacheFactory.IdempotencyStore("checkout:"),
		log,
	)
	reviewService := reviewapp.NewReviewService(reviewRepo, bookingRepo, tourRepo, tourService, log)
	wishlistService := wishlistapp.NewWishlistService(wishlistRepo, tourService, log)

	// Content
	heroService := contentapp.NewHeroService(heroRepo, log)
	blogService := contentapp.NewBlogService(
		blogRepo,
		cache.NewLikeLimiter(cacheFactory.Counter("like:")),
		cfg.RateLimit.LikeWindow,
		log,
	)
	seoService := seoapp.NewSEOService(tourRepo, destinationRepo, blogRepo, tenantService, seoapp.SiteOptions{
		BaseURL:       cfg.Site.BaseURL,
		DisallowPaths: cfg.Site.DisallowPaths,
	}, log)

	// Media uploads go to S3 when a bucket is configured
	var objectStorage mediaapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("Object storage disabled, serving stub upload URLs")
		objectStorage = storage.NewStubObjectStorage(cfg.Storage.PublicBaseURL)
	}
	mediaService := mediaapp.NewMediaService(objectStorage, tourService, cfg.Storage.PresignExpiry, log)

	// Booking events
	eventBus := event.NewInMemoryEventBus(log)
	mailer, err := mail.NewMailer(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}
	mailHandler := event.NewIdempotentHandler(
		"booking-mail",
		notification.NewBookingMailHandler(mailer, log),
		cacheFactory.IdempotencyStore("event:"),
		log,
	)
	eventBus.Subscribe(mailHandler, mailHandler.EventTypes()...)
	bookingMetrics, err := telemetry.NewBookingMetrics(meterProvider.Meter("travelhub.booking"))
	if err != nil {
		log.Fatal("Failed to initialize booking metrics", zap.Error(err))
	}
	eventBus.Subscribe(bookingMetrics, bookingMetrics.EventTypes()...)
	bookingService.SetEventPublisher(eventBus)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	log.Info("Event bus started")

	// Payments
	var webhookService handler.PaymentWebhookService
	if cfg.Stripe.Enabled {
		stripe.Key = cfg.Stripe.SecretKey
		webhookService = bookingapp.NewPaymentWebhookService(cfg.Stripe.WebhookSecret, bookingService, log)
	} else {
		log.Info("Stripe disabled, payment webhooks will be refused")
	}

	// Gin engine
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = production

	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("travelhub.http"))
	if err != nil {
		log.Fatal("Failed to initialize HTTP metrics", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure(securityCfg))
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.ExposeErrors(!production))
	engine.Use(middleware.ResolveTenant(tenantService))
	engine.Use(middleware.ProfilingLabels(profiler.IsEnabled()))
	engine.Use(middleware.Authenticate(authService))

	limits := router.RateLimits{}
	if cfg.RateLimit.Enabled {
		limits = router.RateLimits{
			Counter:      cacheFactory.Counter("ratelimit:"),
			Requests:     cfg.RateLimit.Requests,
			Window:       cfg.RateLimit.Window,
			AuthRequests: cfg.RateLimit.AuthRequests,
			AuthWindow:   cfg.RateLimit.AuthWindow,
		}
	}

	router.RegisterRoutes(engine, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Tenant:       handler.NewTenantHandler(tenantService),
		Tour:         handler.NewTourHandler(tourService),
		Taxonomy:     handler.NewTaxonomyHandler(taxonomyService),
		Offer:        handler.NewOfferHandler(offerService),
		Availability: handler.NewAvailabilityHandler(availabilityService),
		Booking:      handler.NewBookingHandler(bookingService),
		Review:       handler.NewReviewHandler(reviewService, authService),
		Wishlist:     handler.NewWishlistHandler(wishlistService),
		Hero:         handler.NewHeroHandler(heroService),
		Blog:         handler.NewBlogHandler(blogService),
		Media:        handler.NewMediaHandler(mediaService),
		SEO:          handler.NewSEOHandler(seoService),
		Webhook:      handler.NewWebhookHandler(webhookService),
		System: handler.NewSystemHandler(telemetry.ServiceVersion, map[string]handler.HealthCheck{
			"database": db.Ping,
			"redis":    cacheFactory.Ping,
		}),
	}, limits)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := logsProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
