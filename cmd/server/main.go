package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/adapter/http/handler"
	"github.com/LuqmanKt98/surfdims/internal/adapter/http/router"
	natsAdapter "github.com/LuqmanKt98/surfdims/internal/adapter/messaging/nats"
	"github.com/LuqmanKt98/surfdims/internal/adapter/repository/cache"
	mongoRepo "github.com/LuqmanKt98/surfdims/internal/adapter/repository/mongodb"
	"github.com/LuqmanKt98/surfdims/internal/adapter/storage/s3"
	"github.com/LuqmanKt98/surfdims/internal/board/usecase"
	"github.com/LuqmanKt98/surfdims/internal/board/worker"
	"github.com/LuqmanKt98/surfdims/internal/config"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"github.com/LuqmanKt98/surfdims/internal/platform/tracer"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const startupTimeout = 20 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not loaded (%v), using the process environment\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("failed to load configuration", zap.Error(err))
	}
	appLogger.Info("application starting", zap.String("service_name", cfg.ServiceName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal("application stopped with error", zap.Error(err))
	}
	appLogger.Info("application stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("failed to shut down tracer provider", zap.Error(err))
		}
	}()

	startCtx, cancelStart := context.WithTimeout(ctx, startupTimeout)
	defer cancelStart()

	mongoClient, err := mongoRepo.NewMongoClient(startCtx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)
	appLogger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	redisClient, err := cache.NewRedisClient(startCtx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()
	appLogger.Info("connected to Redis", zap.String("address", cfg.RedisAddress))

	natsConn, err := natsAdapter.Connect(cfg.NATSURL, cfg.ServiceName, appLogger)
	if err != nil {
		return err
	}
	publisher := natsAdapter.NewPublisher(natsConn, appLogger)
	defer publisher.Close()

	images, err := s3.NewImageStorage(startCtx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		return err
	}

	listingRepo, err := mongoRepo.NewListingRepository(startCtx, db, appLogger)
	if err != nil {
		return err
	}
	userRepo, err := mongoRepo.NewUserRepository(startCtx, db, appLogger)
	if err != nil {
		return err
	}
	paymentRepo := mongoRepo.NewPaymentRepository(db)
	adRepo := mongoRepo.NewAdRepository(db)
	donationRepo := mongoRepo.NewDonationRepository(db)

	snapshotCache := cache.NewListingCache(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient, cfg.SessionTTL)
	notificationRepo := cache.NewNotificationRepository(redisClient)

	m := metrics.NewMetricsManager(metricsNamespace(cfg.ServiceName))
	gateway := natsAdapter.NewPaymentGateway(publisher)

	lifecycleUC := usecase.NewLifecycleUsecase(listingRepo, userRepo, images, snapshotCache, publisher, m, appLogger)
	paymentUC := usecase.NewPaymentUsecase(paymentRepo, listingRepo, donationRepo, gateway, snapshotCache, publisher, m, appLogger)
	renewalUC := usecase.NewRenewalUsecase(listingRepo, userRepo, paymentUC, snapshotCache, publisher, m, appLogger)
	listingUC := usecase.NewListingUsecase(listingRepo, userRepo, images, paymentUC, snapshotCache, publisher, appLogger)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, listingRepo, cfg.NotificationTrigger == config.TriggerEverySnapshot, m, appLogger)
	feedUC := usecase.NewFeedUsecase(listingRepo, userRepo, adRepo, sessionRepo, snapshotCache, lifecycleUC, notificationUC, cfg.SnapshotCacheTTL, m, appLogger)
	accountUC := usecase.NewAccountUsecase(userRepo, listingRepo, appLogger)
	adminUC := usecase.NewAdminUsecase(listingRepo, userRepo, adRepo, donationRepo, images, lifecycleUC, snapshotCache, publisher, appLogger)

	paymentSub := natsAdapter.NewPaymentSubscriber(natsConn, paymentUC, appLogger)
	if err := paymentSub.Start(); err != nil {
		return err
	}
	defer paymentSub.Stop()

	h := handler.NewHandler(handler.Services{
		Feed:          feedUC,
		Listings:      listingUC,
		Renewals:      renewalUC,
		Accounts:      accountUC,
		Notifications: notificationUC,
		Admin:         adminUC,
	}, appLogger)
	mux := router.New(h, router.Config{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, m, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	sweeper := worker.NewLifecycleSweeper(lifecycleUC, cfg.LifecycleSweepInterval, appLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("HTTP server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return metrics.StartMetricsServer(gctx, cfg.PrometheusMetricsPort, appLogger, m.Registry)
	})
	g.Go(func() error {
		return sweeper.Run(gctx)
	})
	return g.Wait()
}

// metricsNamespace turns a service name into a valid Prometheus namespace.
func metricsNamespace(service string) string {
	out := make([]rune, 0, len(service))
	for _, r := range service {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
