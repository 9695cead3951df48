package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/flyee/flights/internal/booking"
	"github.com/flyee/flights/internal/config"
	"github.com/flyee/flights/internal/httpserver"
	"github.com/flyee/flights/internal/httpserver/deps"
	"github.com/flyee/flights/internal/index"
	"github.com/flyee/flights/internal/logger"
	"github.com/flyee/flights/internal/query"
	"github.com/flyee/flights/internal/redis"
	"github.com/flyee/flights/internal/scheduler"
	redisstore "github.com/flyee/flights/internal/store/redis"
	"github.com/flyee/flights/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	flightIndex *index.FlightIndex
	reloader    *scheduler.DatasetReloader
	janitor     *scheduler.BookingJanitor
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	flightIndex := index.NewFlightIndex()
	flights := query.NewService(flightIndex, loggerClient)

	// Manual reload trigger channel (POST /api/reload)
	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewDatasetReloader(
		cfg.DataFile,
		flightIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Bookings need Redis; without an address the service runs search-only.
	var (
		redisClient *goredis.Client
		store       *redisstore.Store
		bookings    *booking.Service
		janitor     *scheduler.BookingJanitor
	)
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.Options{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		store = redisstore.NewStore(client)
		bookings = booking.NewService(store, flightIndex, loggerClient)
		janitor = scheduler.NewBookingJanitor(bookings, loggerClient, cfg.JanitorInterval, cfg.BookingRetention)
		loggerClient.Info("bookings enabled")
	} else {
		loggerClient.Info("no redis configured, running search-only (bookings disabled)")
	}

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		FlightIndex:      flightIndex,
		Flights:          flights,
		Bookings:         bookings,
		Store:            store,
		RedisClient:      redisClient,
		ReloadTrigger:    reloadTrigger,
		AdminCIDRs:       cfg.AdminCIDRs,
		TrustProxy:       cfg.TrustProxy,
		CORSOrigins:      cfg.CORSOrigins,
		BookingPerMinute: cfg.BookingPerMinute,
		BookingBurst:     cfg.BookingBurst,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		flightIndex: flightIndex,
		reloader:    reloader,
		janitor:     janitor,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting flights API %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("flights %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the dataset and start listening for reload triggers. A broken
	// dataset file logs an error and serves zero results; it never aborts
	// startup.
	a.reloader.Start(ctx)
	a.logger.Info("dataset reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.janitor != nil {
		a.janitor.Start(ctx)
		a.logger.Info("booking janitor started",
			logger.Duration("interval", a.cfg.JanitorInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	if a.janitor != nil {
		a.janitor.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("flights API stopped cleanly")
	return nil
}
