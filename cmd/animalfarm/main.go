package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	farmhttp "github.com/Strob0t/animalfarm/internal/adapter/http"
	"github.com/Strob0t/animalfarm/internal/adapter/mcp"
	"github.com/Strob0t/animalfarm/internal/adapter/memory"
	farmnats "github.com/Strob0t/animalfarm/internal/adapter/nats"
	"github.com/Strob0t/animalfarm/internal/adapter/natskv"
	farmotel "github.com/Strob0t/animalfarm/internal/adapter/otel"
	"github.com/Strob0t/animalfarm/internal/adapter/ristretto"
	"github.com/Strob0t/animalfarm/internal/adapter/tiered"
	"github.com/Strob0t/animalfarm/internal/adapter/ws"
	"github.com/Strob0t/animalfarm/internal/config"
	"github.com/Strob0t/animalfarm/internal/logger"
	"github.com/Strob0t/animalfarm/internal/middleware"
	"github.com/Strob0t/animalfarm/internal/port/cache"
	"github.com/Strob0t/animalfarm/internal/resilience"
	"github.com/Strob0t/animalfarm/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	var err error
	if len(os.Args) > 1 && isClientCommand(os.Args[1]) {
		err = runClient(os.Args[1], os.Args[2:])
	} else {
		err = run()
	}
	if err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	cfg, cfgPath, err := config.LoadWithCLI(flags)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	appLogger, closeLog := logger.New(cfg.Logging)
	defer closeLog.Close()
	slog.SetDefault(appLogger)

	slog.Info("config loaded",
		"path", cfgPath,
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"nats", cfg.NATS.URL != "",
		"mcp", cfg.MCP.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---

	shutdownOtel, err := farmotel.Setup(ctx, cfg.OTEL)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOtel(sctx); err != nil {
			slog.Error("otel shutdown failed", "error", err)
		}
	}()

	metrics, err := farmotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---

	hub := ws.NewHub(cfg.Server.CORSOrigin)

	farm := service.NewFarmService(memory.NewStore(), hub)
	farm.SetMetrics(metrics)

	if _, err := farmotel.ObserveFarm(farm.Gauges); err != nil {
		return fmt.Errorf("farm gauges: %w", err)
	}

	// --- Infrastructure ---

	l1, err := ristretto.New(int(cfg.Cache.L1MaxSizeMB))
	if err != nil {
		return fmt.Errorf("l1 cache: %w", err)
	}
	defer l1.Close()

	var l2 cache.Cache
	if cfg.NATS.URL != "" {
		queue, err := farmnats.Connect(ctx, cfg.NATS.URL, cfg.NATS.Stream)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() {
			if err := queue.Drain(); err != nil {
				slog.Error("nats drain failed", "error", err)
			}
		}()

		breaker := resilience.NewBreaker("nats-publish", cfg.Breaker.MaxFailures, cfg.Breaker.Timeout,
			resilience.WithStateChange(func(name string, from, to resilience.State) {
				slog.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			}),
		)
		farm.SetQueue(queue, breaker)

		kv, err := queue.KeyValue(ctx, cfg.Cache.L2Bucket, cfg.Cache.L2TTL)
		if err != nil {
			return fmt.Errorf("nats kv: %w", err)
		}
		l2 = natskv.New(kv)
		slog.Info("event publishing enabled", "stream", cfg.NATS.Stream, "kv_bucket", cfg.Cache.L2Bucket)
	}
	idemCache := tiered.New(l1, l2, cfg.Idempotency.TTL)

	limiter := middleware.NewRateLimiterFromConfig(cfg.Rate, "/health", "/metrics", "/ws")

	// --- HTTP ---

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(farmhttp.Logger)
	r.Use(farmhttp.SecurityHeaders)
	r.Use(farmhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(farmotel.HTTPMiddleware(cfg.OTEL.ServiceName))
	r.Use(limiter.Handler)

	// Long-lived WebSocket and MCP streams sit outside the request timeout.
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
		r.Use(middleware.Idempotency(idemCache, cfg.Idempotency.TTL))
		farmhttp.MountRoutes(r, &farmhttp.Handlers{Farm: farm})
	})
	r.Get("/ws", hub.HandleWS)
	if cfg.MCP.Enabled {
		srv := mcp.NewServer(mcp.ServerConfig{Name: cfg.MCP.Name, Version: cfg.MCP.Version}, farm)
		r.Handle("/mcp", srv.Handler())
	}

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx, cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		hub.Close()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("server stopped")
	return nil
}
