package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.Observe("POST", "/ShoppingCart/AddProductToCart", 200, 40*time.Millisecond)
	metrics.Observe("POST", "/ShoppingCart/AddProductToCart", 400, 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "status", "200"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected requests{status=200}=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/ShoppingCart/AddProductToCart"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestHTTPMetricsUnknownRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewHTTPMetrics(reg).Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if _, err := fetchCounterValue(mfs, "http_requests_total", "route", "unknown"); err != nil {
		t.Fatalf("expected unknown route label: %v", err)
	}
}

func TestCartMetricsCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCartMetrics(reg)
	metrics.IncOperation(OutcomeItemAdded)
	metrics.IncOperation(OutcomeItemAdded)
	metrics.IncOperation(OutcomeItemIncremented)
	metrics.IncCartCreated()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_operations_total", "outcome", OutcomeItemAdded); err != nil {
		t.Fatalf("fetch added: %v", err)
	} else if got != 2 {
		t.Fatalf("expected item_added=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "cart_operations_total", "outcome", OutcomeItemIncremented); err != nil {
		t.Fatalf("fetch incremented: %v", err)
	} else if got != 1 {
		t.Fatalf("expected item_incremented=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "carts_created_total")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatalf("carts_created_total not exported")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected carts_created_total=1, got %f", got)
	}
}

func TestSeedMetricsSkipsDurationForSkippedLoads(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSeedMetrics(reg)
	metrics.ObserveLoad(SeedResultSkipped, time.Second)
	metrics.ObserveLoad(SeedResultLoaded, 300*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "seed_load_total", "result", SeedResultSkipped); err != nil {
		t.Fatalf("fetch skipped: %v", err)
	} else if got != 1 {
		t.Fatalf("expected skipped=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "seed_load_duration_seconds")
	if mf == nil {
		t.Fatalf("seed_load_duration_seconds not exported")
	}
	if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
		t.Fatalf("expected one duration sample, got %d", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var cart *CartMetrics
	cart.IncOperation(OutcomeItemAdded)
	cart.IncCartCreated()

	var seed *SeedMetrics
	seed.ObserveLoad(SeedResultFailed, time.Second)

	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
