package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourneighborhoodchef/stocksms/internal/domain"
)

const outcomeOK = "ok"

// Metrics groups the Prometheus instruments for the poll loop.
type Metrics struct {
	Checks        *prometheus.CounterVec
	CheckDuration prometheus.Histogram
	Notifications *prometheus.CounterVec
}

// New registers all instruments with reg. A private registry keeps tests
// isolated from the global default.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_checks_total",
			Help: "Stock checks by outcome (ok or notification kind).",
		}, []string{"outcome"}),

		CheckDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stock_check_duration_seconds",
			Help:    "Latency of one product request including body read.",
			Buckets: prometheus.DefBuckets,
		}),

		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sms_notifications_total",
			Help: "SMS delivery attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.Checks, m.CheckDuration, m.Notifications)
	return m
}

// Hooks returns the callbacks expected by monitor.Hooks.
func (m *Metrics) Hooks() (
	onCheck func(n *domain.Notification, latency time.Duration),
	onDelivery func(err error),
) {
	onCheck = func(n *domain.Notification, latency time.Duration) {
		outcome := outcomeOK
		if n != nil {
			outcome = string(n.Kind)
		}
		m.Checks.WithLabelValues(outcome).Inc()
		m.CheckDuration.Observe(latency.Seconds())
	}
	onDelivery = func(err error) {
		result := "delivered"
		if err != nil {
			result = "failed"
		}
		m.Notifications.WithLabelValues(result).Inc()
	}
	return
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
