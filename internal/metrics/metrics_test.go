package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yourneighborhoodchef/stocksms/internal/domain"
	"github.com/yourneighborhoodchef/stocksms/internal/metrics"
)

func TestHooks(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	onCheck, onDelivery := m.Hooks()

	onCheck(nil, 10*time.Millisecond)
	onCheck(nil, 10*time.Millisecond)
	onCheck(domain.Transient(domain.KindTransport, "x"), time.Millisecond)
	onDelivery(nil)
	onDelivery(errors.New("boom"))

	if got := testutil.ToFloat64(m.Checks.WithLabelValues("ok")); got != 2 {
		t.Fatalf("expected 2 ok checks, got %v", got)
	}
	if got := testutil.ToFloat64(m.Checks.WithLabelValues(string(domain.KindTransport))); got != 1 {
		t.Fatalf("expected 1 transport check, got %v", got)
	}
	if got := testutil.ToFloat64(m.Notifications.WithLabelValues("delivered")); got != 1 {
		t.Fatalf("expected 1 delivered, got %v", got)
	}
	if got := testutil.ToFloat64(m.Notifications.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed, got %v", got)
	}
}
