package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/chat-endpoints/internal/config"
	"github.com/maxviazov/chat-endpoints/internal/endpoints"
	"github.com/maxviazov/chat-endpoints/internal/handler"
	"github.com/maxviazov/chat-endpoints/internal/logger"
	"github.com/maxviazov/chat-endpoints/internal/metrics"
	"github.com/maxviazov/chat-endpoints/internal/proxy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// APP_CONFIG points at a YAML file; unset means defaults + APP_* env
	cfg, err := config.Load(os.Getenv("APP_CONFIG"))
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	table, err := endpoints.New(cfg.API.BaseURL)
	if err != nil {
		appLogger.Fatal().Err(err).Str("base_url", cfg.API.BaseURL).Msg("route table initialization failed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var px *proxy.Proxy
	if cfg.Proxy.Enabled {
		px, err = proxy.New(cfg.Proxy, appLogger, m)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("dev proxy initialization failed")
		}
		appLogger.Info().Str("prefix", px.Prefix()).Str("target", px.Target()).Bool("change_origin", cfg.Proxy.ChangeOrigin).Msg("dev proxy enabled")
	}

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(appLogger), m.Middleware())
	handler.Register(r, table, px)
	handler.RegisterMetrics(r, reg)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("base_url", table.BaseURL()).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		appLogger.Fatal().Err(err).Str("addr", srv.Addr).Msg("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	appLogger.Info().Msg("server stopped")
}
