package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/umalmyha/ledger/internal/config"
	"github.com/umalmyha/ledger/internal/infra"
	"github.com/umalmyha/ledger/internal/metrics"
	"github.com/umalmyha/ledger/internal/service"
	"github.com/umalmyha/ledger/internal/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build()
		if err != nil {
			return err
		}

		logger, err := infra.Logger(cfg.LogCfg)
		if err != nil {
			return err
		}

		storage, err := infra.CustomerStorage(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := storage.Close(context.Background()); err != nil {
				logger.WithError(err).Error("failed to close storage")
			}
		}()

		v, err := validation.New()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		m := metrics.New()
		m.MustRegister(reg)

		ledger := service.NewLedger(storage.Customers, v, service.WithMetrics(m), service.WithLogger(logger))
		if err := ledger.Refresh(cmd.Context()); err != nil {
			// dashboard shows retryable notification
			logger.WithError(err).Warn("initial customers load failed")
		}

		app, err := infra.Router(ledger, v, reg, logger)
		if err != nil {
			return err
		}

		shutdownCh := make(chan os.Signal, 1)
		errorCh := make(chan error, 1)
		signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

		go func() {
			logger.Infof("starting http server on %s with %s storage", cfg.HTTPCfg.Addr, cfg.StorageCfg.Backend)
			errorCh <- app.Start(cfg.HTTPCfg.Addr)
		}()

		select {
		case <-shutdownCh:
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPCfg.ShutdownTimeout)
			defer cancel()

			logger.Info("shutdown signal has been sent, stopping the server...")
			if err := app.Shutdown(ctx); err != nil {
				return fmt.Errorf("failed to stop server gracefully - %w", err)
			}
		case err := <-errorCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("shutting down the server, unexpected error occurred - %w", err)
			}
		}
		return nil
	},
}
