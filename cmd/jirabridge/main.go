package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/jirabridge/jirabridge/configs"
	"github.com/jirabridge/jirabridge/internal/adapter/inbound/adminhttp"
	"github.com/jirabridge/jirabridge/internal/adapter/outbound/jirarest"
	"github.com/jirabridge/jirabridge/internal/usecase"
)

const (
	serverName    = "jirabridge"
	serverVersion = "0.1.0"
)

func main() {
	var transport string
	flag.StringVar(&transport, "transport", "stdio", "Transport mode: stdio or sse")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(transport, cfg.ParsedLogLevel())
	slog.SetDefault(logger)
	logger.Info("Logger initialized.",
		slog.String("level", cfg.ParsedLogLevel().String()),
		slog.String("transport", transport))

	shutdownOtel, err := initOtelProvider(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// === Dependency injection ===
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	jiraClient := jirarest.New(cfg.URL, cfg.Email, cfg.APIToken, httpClient, logger)

	gateway := usecase.NewGateway(logger)
	toolset := usecase.NewToolset(jiraClient, usecase.ConnectionInfo{
		BaseURL:        cfg.URL,
		Email:          cfg.Email,
		DefaultProject: cfg.DefaultProject,
	}, logger)
	if err := toolset.RegisterAll(gateway); err != nil {
		logger.Error("Failed to register tools.", slog.Any("error", err))
		os.Exit(1)
	}

	mcpSrv := mcpserver.NewMCPServer(serverName, serverVersion)
	gateway.Attach(mcpSrv)
	logger.Info("MCP server initialized.", slog.String("jira_url", cfg.URL))

	switch transport {
	case "stdio":
		logger.Info("Starting in STDIO mode")
		stdioServer := mcpserver.NewStdioServer(mcpSrv)
		if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("STDIO server error", slog.Any("error", err))
			os.Exit(1)
		}

	case "sse":
		logger.Info("Starting in SSE mode")
		sseServer := mcpserver.NewSSEServer(mcpSrv, mcpserver.WithBaseURL("http://"+cfg.ListenAddr))

		adminMux := http.NewServeMux()
		adminhttp.NewHandlers(gateway, logger).RegisterRoutes(adminMux)
		adminServer := &http.Server{Addr: cfg.AdminAddr, Handler: adminMux}
		go func() {
			logger.Info("Admin HTTP server starting.", slog.String("address", adminServer.Addr))
			if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Admin HTTP server failed to start.", slog.Any("error", err))
			}
		}()

		go func() {
			logger.Info("MCP SSE server starting.", slog.String("address", cfg.ListenAddr))
			if err := sseServer.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP SSE server failed to start.", slog.Any("error", err))
				stop()
			}
		}()

		<-ctx.Done()

		logger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := adminServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Admin HTTP server graceful shutdown failed.", slog.Any("error", err))
		}
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP SSE server graceful shutdown failed.", slog.Any("error", err))
		}
		logger.Info("Servers shut down gracefully.")

	default:
		logger.Error("Invalid transport mode", slog.String("transport", transport))
		os.Exit(1)
	}
}

// newLogger builds the slog logger. In stdio mode the protocol owns
// stdout/stderr framing expectations, so logs go to a file, falling back
// to discard.
func newLogger(transport string, level slog.Level) *slog.Logger {
	if transport == "stdio" {
		logFile, err := os.OpenFile("/tmp/jirabridge.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
		}
		return slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// initOtelProvider sets up the OTLP trace exporter, returning a shutdown
// function for process exit. Tracing stays disabled when no endpoint is
// configured.
func initOtelProvider(cfg *configs.Config, logger *slog.Logger) (func(context.Context) error, error) {
	ctx := context.Background()

	if cfg.OtelExporterOtlpEndpoint == "" {
		logger.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, OpenTelemetry tracing disabled.")
		return func(context.Context) error { return nil }, nil
	}

	logger.Info("Initializing OTLP exporter.", slog.String("endpoint", cfg.OtelExporterOtlpEndpoint))

	grpcOpts := []grpc.DialOption{}
	if cfg.OtelExporterOtlpInsecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		logger.Warn("Using insecure connection for OTLP exporter.")
	}

	conn, err := grpc.NewClient(cfg.OtelExporterOtlpEndpoint, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serverName),
		),
	)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) error {
		providerErr := tp.Shutdown(ctx)
		connErr := conn.Close()
		return errors.Join(providerErr, connErr)
	}, nil
}
