package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"tarifa/internal/currency"
	"tarifa/internal/evaluation"
	"tarifa/internal/evaluation/metrics"
	"tarifa/internal/jurisdiction"
	"tarifa/internal/pedimento"
	"tarifa/internal/platform/config"
	"tarifa/internal/platform/httpserver"
	"tarifa/internal/platform/logger"
	"tarifa/internal/tables"
	httptransport "tarifa/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the engine and adapters.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	table, err := loadTable(cfg)
	if err != nil {
		log.Error("loading rule table", "error", err)
		return
	}

	m := metrics.New()
	rates := currency.NewClient(cfg.RatesBaseURL, cfg.RatesTimeout)
	engine := evaluation.New(table, rates, log, m)

	registry := jurisdiction.NewRegistry()
	registry.Register(table.Jurisdiction, jurisdiction.Entry{
		Evaluator: engine,
		Adapter:   pedimento.NewAdapter(),
	})

	handler := httptransport.New(registry, log, m)
	api := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting tarifa", "addr", cfg.Addr, "jurisdiction", table.Jurisdiction)
		if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return api.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
	}
}

// loadTable prefers an operator-supplied table file over the embedded MX
// default.
func loadTable(cfg config.Server) (*tables.RuleTable, error) {
	if cfg.RuleTableFile != "" {
		return tables.Load(cfg.RuleTableFile)
	}
	return tables.DefaultMX()
}
