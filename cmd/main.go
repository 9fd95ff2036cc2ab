package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/takatori/gprofiler/internal"
	"github.com/takatori/gprofiler/internal/enrichment/gprofiler"
	"github.com/takatori/gprofiler/internal/server"
)

func main() {

	config, err := internal.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger := internal.NewLogger(config)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	gp, err := gprofiler.NewGProfiler(
		config,
		gprofiler.WithLogger(logger),
		gprofiler.WithPrometheus(reg),
	)
	if err != nil {
		log.Fatal("Failed to initialize g:Profiler client: ", err)
	}

	e, err := server.InitServer(gp, reg)
	if err != nil {
		log.Fatal("Failed to initialize server: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := e.Start(config.EchoAddr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
