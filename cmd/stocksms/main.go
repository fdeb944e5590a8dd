package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/stocksms/internal/client"
	"github.com/yourneighborhoodchef/stocksms/internal/config"
	"github.com/yourneighborhoodchef/stocksms/internal/logging"
	"github.com/yourneighborhoodchef/stocksms/internal/metrics"
	"github.com/yourneighborhoodchef/stocksms/internal/monitor"
	"github.com/yourneighborhoodchef/stocksms/internal/notify"
	"github.com/yourneighborhoodchef/stocksms/internal/ratelimit"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "stocksms:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	httpClient, err := client.CreateClient(cfg.RequestTimeout, cfg.ProxyURL)
	if err != nil {
		return fmt.Errorf("create http client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	checker := client.NewChecker(httpClient, cfg.ProductURL, cfg.UserAgent, cfg.Baseline(), logger)
	sender := notify.NewSMSNotifier(httpClient, cfg.TwilioBaseURL, cfg.Credentials, cfg.UserAgent, logger)
	jar := ratelimit.NewTokenJar(cfg.PollInterval, 1)

	onCheck, onDelivery := m.Hooks()
	mon := monitor.New(checker, sender, jar, cfg.Cooldown, logger, monitor.WithHooks(monitor.Hooks{
		OnCheck:    onCheck,
		OnDelivery: onDelivery,
	}))

	logger.Info("monitoring product",
		zap.String("url", cfg.ProductURL),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Duration("cooldown", cfg.Cooldown),
		zap.String("baseline_updated_at", cfg.BaselineUpdatedAt),
	)

	err = mon.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutdown signal received")
		return nil
	}
	return err
}
