// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/SonorousGuardian/risk-management-dashboard/pkg/logging"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/ingest"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/middleware"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/routes"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// initTracer wires the OTLP gRPC exporter when a collector endpoint is
// configured. Tracing is optional: without OTEL_EXPORTER_OTLP_ENDPOINT
// the service runs untraced.
func initTracer(ctx context.Context) (func(context.Context), error) {
	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		return func(context.Context) {}, nil
	}

	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("riskdash-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	port := envOr("RISKDASH_PORT", "12400")
	dataDir := envOr("RISKDASH_DATA_DIR", "./data/riskdash")
	csvPath := envOr("RISKDASH_CSV_PATH", "./data/risk_register.csv")

	logger := logging.New(logging.Config{
		Level:   logging.LevelInfo,
		Service: "dashboard",
		JSON:    true,
		LogDir:  os.Getenv("RISKDASH_LOG_DIR"),
	})
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanup, err := initTracer(ctx)
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	riskStore, err := store.Open(store.DefaultConfig(dataDir))
	if err != nil {
		log.Fatalf("FATAL: could not open the risk store: %v", err)
	}
	defer riskStore.Close()

	syncer := ingest.NewSyncer(riskStore)

	// Seed the register from the configured CSV if one is present.
	if _, err := os.Stat(csvPath); err == nil {
		result, err := syncer.SyncCSVFile(csvPath)
		if err != nil {
			slog.Warn("initial csv sync failed", "path", csvPath, "error", err)
		} else {
			slog.Info("initial csv sync completed",
				"created", result.Created, "updated", result.Updated, "errors", len(result.Errors))
		}
	} else {
		slog.Info("no register CSV found, starting with stored data only", "path", csvPath)
	}

	sheetsCfg := ingest.SheetsConfig{
		SpreadsheetID:   os.Getenv("RISKDASH_SHEET_ID"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ReadRange:       os.Getenv("RISKDASH_SHEET_RANGE"),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("riskdash-service"))
	router.Use(middleware.Metrics())
	routes.SetupRoutes(router, routes.Config{
		Store:     riskStore,
		Syncer:    syncer,
		CSVPath:   csvPath,
		SheetsCfg: sheetsCfg,
	})

	srv := &http.Server{Addr: ":" + port, Handler: router}

	g, gctx := errgroup.WithContext(ctx)

	// Keep the register in step with on-disk edits to the CSV.
	if _, err := os.Stat(csvPath); err == nil {
		watcher, err := ingest.NewCSVWatcher(csvPath, syncer, logger.Slog())
		if err != nil {
			slog.Warn("csv watcher disabled", "path", csvPath, "error", err)
		} else {
			g.Go(func() error {
				defer watcher.Close()
				watcher.Run(gctx)
				return nil
			})
		}
	}

	g.Go(func() error {
		slog.Info("risk dashboard listening", "port", port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("service exited: %v", err)
	}
	slog.Info("risk dashboard stopped")
}
