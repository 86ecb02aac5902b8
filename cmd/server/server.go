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
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/config"
	v1alpha1 "github.com/KirkDiggler/rpg-dice-mcp/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/handlers/mcpserver"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/metrics"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/pkg/roller"
	"github.com/KirkDiggler/rpg-dice-mcp/internal/telemetry"
)

const diceServiceName = "api.v1alpha1.DiceService"

var (
	transportFlag string
	httpAddr      string
	grpcPort      int
	seed          uint64
	logLevel      string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the MCP server",
	Long: `Start the dice MCP server. Flags override DICE_* environment variables.

Over stdio the process serves a single client on stdin/stdout and logs to stderr.
Over http it serves /mcp, /metrics and /healthz.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&transportFlag, "transport", config.TransportStdio, "MCP transport: stdio or http")
	serverCmd.Flags().StringVar(&httpAddr, "http-addr", "localhost:8081", "Listen address for the http transport")
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC DiceService port, 0 disables it")
	serverCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible rolls")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

// loadConfig reads the environment then applies any flags set on cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Transport = transportFlag
	}
	if flags.Changed("http-addr") {
		cfg.HTTPAddr = httpAddr
	}
	if flags.Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("seed") {
		s := seed
		cfg.Seed = &s
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    "rpg-dice-mcp",
		ServiceVersion: version,
		Endpoint:       cfg.OTelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces", "error", err)
		}
	}()

	diceService, err := dice.NewOrchestrator(&dice.Config{
		Roller: roller.New(cfg.Seed),
		Observer: dice.MultiObserver(
			dice.SlogObserver(logger),
			mcpserver.SessionObserver(logger),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create dice service: %w", err)
	}

	mcpServer, err := mcpserver.NewServer(&mcpserver.Config{
		DiceService: diceService,
		Version:     version,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	errChan := make(chan error, 2)

	var grpcServer *grpc.Server
	var healthServer *health.Server
	if cfg.GRPCPort > 0 {
		grpcServer, healthServer, err = newGRPCServer(logger, diceService)
		if err != nil {
			return err
		}

		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		go func() {
			logger.Info("gRPC server starting", "port", cfg.GRPCPort)
			if err := grpcServer.Serve(lis); err != nil {
				errChan <- fmt.Errorf("failed to serve gRPC: %w", err)
			}
		}()
	}

	var httpServer *http.Server
	switch cfg.Transport {
	case config.TransportHTTP:
		httpServer = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           newHTTPMux(mcpServer),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("MCP HTTP server starting", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("failed to serve HTTP: %w", err)
			}
		}()
	default:
		go func() {
			// A nil error means the client closed stdin
			errChan <- mcpServer.RunStdio(ctx)
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal, gracefully stopping...")
	case err = <-errChan:
		if err != nil {
			logger.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if httpServer != nil {
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("HTTP shutdown incomplete", "error", shutdownErr)
		}
	}
	if grpcServer != nil {
		healthServer.Shutdown()
		stopGRPC(shutdownCtx, logger, grpcServer)
	}

	return err
}

func newGRPCServer(logger *slog.Logger, diceService dice.Service) (*grpc.Server, *health.Server, error) {
	logFunc := func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		logger.Log(ctx, slog.Level(level), msg, fields...)
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	diceHandler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		DiceService: diceService,
		IDGenerator: idgen.NewUUID("roll"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create dice handler: %w", err)
	}
	apiv1alpha1.RegisterDiceServiceServer(srv, diceHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(diceServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, healthServer, nil
}

func stopGRPC(ctx context.Context, logger *slog.Logger, srv *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		logger.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		logger.Info("gRPC server stopped gracefully")
	}
}

func newHTTPMux(mcpServer *mcpserver.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpServer.HTTPHandler())
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n")) // nolint:errcheck // best effort probe body
	})
	return mux
}
