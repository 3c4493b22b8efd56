package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"hkidcheck/internal/platform/config"
	"hkidcheck/internal/platform/httpserver"
	"hkidcheck/internal/platform/logger"
	"hkidcheck/internal/platform/metrics"
	ratelimit "hkidcheck/internal/ratelimit/middleware"
	rlmetrics "hkidcheck/internal/ratelimit/metrics"
	"hkidcheck/internal/ratelimit/store/bucket"
	httptransport "hkidcheck/internal/transport/http"
	"hkidcheck/internal/verification"
	vmetrics "hkidcheck/internal/verification/metrics"
	"hkidcheck/internal/verification/service"
	"hkidcheck/pkg/hkid"
	"hkidcheck/pkg/platform/audit/publishers/ops"
	"hkidcheck/pkg/platform/middleware/metadata"
)

const sweepInterval = 5 * time.Minute

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Identifier logic lives in pkg/hkid.
func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, cfgErr := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfgErr != nil {
		log.Warn("invalid configuration values, using defaults", "error", cfgErr)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	reg := metrics.New()

	publisher := ops.NewPublisher(log,
		ops.WithSampler(ops.NewSampler(cfg.AuditSampleRate)),
		ops.WithMetrics(ops.NewMetrics(reg)),
	)
	svc, err := verification.NewService(hkid.NewEngine(),
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(vmetrics.New(reg)),
		service.WithBatchLimits(cfg.BatchLimit, cfg.BatchWorkers),
	)
	if err != nil {
		return err
	}

	buckets := bucket.NewInMemoryBucketStore()
	limiter := ratelimit.New(buckets, log, cfg.RateLimit, cfg.RateWindow,
		ratelimit.WithDisabled(cfg.RateLimit == 0),
		ratelimit.WithMetrics(rlmetrics.New(reg)),
	)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		MetricsHandler: reg.Handler(),
		ClientIP:       metadata.NewResolver(cfg.TrustedProxies),
		APIMiddleware:  chi.Middlewares{limiter.RateLimit},
	}, verification.NewHandler(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return buckets.RunSweeper(gctx, sweepInterval)
	})
	g.Go(func() error {
		log.Info("starting hkidcheck", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
