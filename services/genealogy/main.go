// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/LineageBench/services/genealogy/handlers"
	"github.com/AleutianAI/LineageBench/services/genealogy/middleware"
	"github.com/AleutianAI/LineageBench/services/genealogy/observability"
	"github.com/AleutianAI/LineageBench/services/genealogy/routes"
	"github.com/AleutianAI/LineageBench/services/genealogy/store"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// initTracer wires the OTLP gRPC exporter. Returns a nil cleanup when no
// collector endpoint is configured (lightweight mode).
func initTracer() (func(context.Context), error) {
	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set. Running without tracing.")
		return nil, nil
	}

	ctx := context.Background()
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
		resource.WithAttributes(semconv.ServiceNameKey.String("genealogy-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port := envOrDefault("GENEALOGY_PORT", "5001")
	workbook := envOrDefault("GENEALOGY_WORKBOOK", "Prompts.xlsx")
	ratingsFile := envOrDefault("GENEALOGY_RATINGS_FILE", "ai_model_ratings.xlsx")
	assessmentsFile := envOrDefault("GENEALOGY_ASSESSMENTS_FILE", "genealogy_assessments.xlsx")

	slog.Info("Starting Genealogy Service",
		"workbook", workbook,
		"ratings_file", ratingsFile,
		"assessments_file", assessmentsFile)

	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	if cleanup != nil {
		defer cleanup(context.Background())
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	dataStore := store.New(store.Config{
		WorkbookPath:    workbook,
		RatingsPath:     ratingsFile,
		AssessmentsPath: assessmentsFile,
		Metrics:         metrics,
	})
	dataStore.LoadLineage()
	dataStore.LoadBiography()
	slog.Info("Initial load complete", "people", dataStore.PeopleCount())

	if os.Getenv("GENEALOGY_WATCH") != "false" {
		if err := dataStore.Watch(context.Background()); err != nil {
			slog.Warn("Failed to start workbook watcher", "error", err)
		}
	}

	router := gin.Default()
	router.Use(middleware.CORS(os.Getenv("CORS_ORIGINS")))
	router.Use(middleware.Metrics(metrics))
	if cleanup != nil {
		router.Use(otelgin.Middleware("genealogy-service"))
	}

	routes.SetupRoutes(router, handlers.NewHandlers(dataStore))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	slog.Info("Starting the genealogy API server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
