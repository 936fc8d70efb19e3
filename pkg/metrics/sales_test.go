package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
)

func TestSaleMetricsExportsCountersAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSaleMetrics(reg)

	m.ObserveFinalized(decimal.RequireFromString("107.50"), 120*time.Millisecond)
	m.IncFailure(StageFinalize)
	m.IncFailure("")
	m.IncEvent(EventHold)
	m.IncEvent(EventHold)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := counterValue(t, mfs, "pos_sales_finalized_total", "", ""); got != 1 {
		t.Fatalf("expected finalized=1, got %f", got)
	}
	if got := counterValue(t, mfs, "pos_sale_failures_total", "stage", StageFinalize); got != 1 {
		t.Fatalf("expected finalize failures=1, got %f", got)
	}
	if got := counterValue(t, mfs, "pos_sale_failures_total", "stage", "unknown"); got != 1 {
		t.Fatalf("empty stage should be labelled unknown, got %f", got)
	}
	if got := counterValue(t, mfs, "pos_cart_events_total", "event", EventHold); got != 2 {
		t.Fatalf("expected hold=2, got %f", got)
	}

	mf := findMetricFamily(mfs, "pos_sale_grand_total")
	if mf == nil {
		t.Fatalf("grand total histogram missing")
	}
	if sum := mf.GetMetric()[0].GetHistogram().GetSampleSum(); sum != 107.5 {
		t.Fatalf("expected grand total sum 107.5, got %f", sum)
	}
}

func TestNilSaleMetricsIsNoop(t *testing.T) {
	var m *SaleMetrics
	m.ObserveFinalized(decimal.NewFromInt(1), time.Second)
	m.IncFailure(StageCreate)
	m.IncEvent(EventResume)

	unregistered := NewSaleMetrics(nil)
	unregistered.ObserveFinalized(decimal.NewFromInt(1), time.Second)
	unregistered.IncEvent(EventClear)
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name, label, value string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		t.Fatalf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if label == "" || matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue()
		}
	}
	t.Fatalf("%s", fmt.Sprintf("metric %q missing label %s=%s", name, label, value))
	return 0
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
