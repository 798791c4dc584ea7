package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/cabeard21/ao-bin-dumps/internal/catalog"
	"github.com/cabeard21/ao-bin-dumps/internal/clients/market"
	"github.com/cabeard21/ao-bin-dumps/internal/config"
	"github.com/cabeard21/ao-bin-dumps/internal/engine"
	selectionv1 "github.com/cabeard21/ao-bin-dumps/internal/handlers/selection/v1"
	"github.com/cabeard21/ao-bin-dumps/internal/logger"
	"github.com/cabeard21/ao-bin-dumps/internal/metrics"
	"github.com/cabeard21/ao-bin-dumps/internal/orchestrators/selection"
	"github.com/cabeard21/ao-bin-dumps/internal/pkg/clock"
	redisclient "github.com/cabeard21/ao-bin-dumps/internal/redis"
	"github.com/cabeard21/ao-bin-dumps/internal/repositories/items"
	"github.com/cabeard21/ao-bin-dumps/internal/repositories/selections"
	"github.com/cabeard21/ao-bin-dumps/internal/services/pricing"
)

var (
	grpcPort    int
	metricsPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the selection gRPC server. Settings come from the environment (or a .env file);
the catalog is read from redis and must be imported first with "catalog import".`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", config.DefaultPort, "gRPC server port (overrides PORT)")
	serverCmd.Flags().IntVar(&metricsPort, "metrics-port", config.DefaultMetricsPort, "Prometheus port, 0 disables (overrides METRICS_PORT)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = grpcPort
	}
	if cmd.Flags().Changed("metrics-port") {
		cfg.MetricsPort = metricsPort
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
		Version:     version,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping")
		cancel()
	}()

	rdb, err := redisclient.Open(cfg.RedisAddrs, nil)
	if err != nil {
		return fmt.Errorf("failed to open redis: %w", err)
	}
	defer func() {
		_ = rdb.Close() // nolint:errcheck // safe to ignore on shutdown
	}()

	selectionHandler, err := newSelectionHandler(ctx, cfg, rdb)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	selectionv1.RegisterSelectionServiceServer(srv, selectionHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(selectionv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.MetricsPort > 0 {
		metricsServer = newMetricsServer(cfg.MetricsPort)
		go func() {
			slog.Info("Metrics server starting", "port", cfg.MetricsPort)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("failed to serve metrics: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if metricsServer != nil {
			_ = metricsServer.Shutdown(shutdownCtx) // nolint:errcheck // best effort on shutdown
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// newSelectionHandler wires the catalog, market client, fetcher and
// orchestrator behind the gRPC handler
func newSelectionHandler(ctx context.Context, cfg *config.Config, rdb redisclient.Client) (*selectionv1.Handler, error) {
	itemsRepo, err := items.NewRedis(&items.RedisConfig{Client: rdb})
	if err != nil {
		return nil, fmt.Errorf("failed to create items repository: %w", err)
	}

	snapshot, err := itemsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog (run \"catalog import\" first): %w", err)
	}

	cat, err := catalog.NewStatic(&catalog.StaticConfig{
		Items:          snapshot.Items,
		QualityBonuses: snapshot.QualityBonuses,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	slog.Info("Catalog loaded", "items", cat.Len())

	eng, err := engine.New(&engine.Config{Catalog: cat})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	marketClient, err := market.New(&market.Config{
		BaseURL:     cfg.MarketBaseURL,
		HTTPTimeout: cfg.MarketTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create market client: %w", err)
	}

	fetcher, err := pricing.New(&pricing.Config{
		Client:  marketClient,
		Limiter: newMarketLimiter(cfg.MarketRequestsPerSecond),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create price fetcher: %w", err)
	}

	selectionRepo, err := selections.NewRedisRepository(&selections.Config{
		Client: rdb,
		Clock:  clock.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create selection repository: %w", err)
	}

	orchestrator, err := selection.NewOrchestrator(&selection.Config{
		Engine:          eng,
		Fetcher:         fetcher,
		SelectionRepo:   selectionRepo,
		DefaultLocation: cfg.DefaultLocation,
		SelectionTTL:    cfg.SelectionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create selection orchestrator: %w", err)
	}

	handler, err := selectionv1.NewHandler(&selectionv1.HandlerConfig{
		SelectionService: orchestrator,
		Engine:           eng,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create selection handler: %w", err)
	}

	return handler, nil
}

// newMarketLimiter returns the request budget shared by every price fetch.
// Zero or less disables the limit.
func newMarketLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

func newMetricsServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
