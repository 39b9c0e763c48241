package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordGenerationSuccess_IncrementsCounter は生成成功カウンタが増加することを検証する。
func TestRecordGenerationSuccess_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGenerationSuccess("social_post")
	c.RecordGenerationSuccess("social_post")

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "adcraft_generation_success_total" {
			found = true
			if len(mf.GetMetric()) != 1 {
				t.Fatalf("expected 1 metric, got %d", len(mf.GetMetric()))
			}
			val := mf.GetMetric()[0].GetCounter().GetValue()
			if val != 2 {
				t.Errorf("generation_success_total = %v, want 2", val)
			}
		}
	}
	if !found {
		t.Error("adcraft_generation_success_total metric not found")
	}
}

// TestRecordGenerationFailure_LabelsByContentType は失敗カウンタがコンテンツタイプ別に記録されることを検証する。
func TestRecordGenerationFailure_LabelsByContentType(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGenerationFailure("flyer")
	c.RecordGenerationFailure("radio_script")
	c.RecordGenerationFailure("flyer")

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() == "adcraft_generation_fail_total" {
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 labeled metrics, got %d", len(mf.GetMetric()))
			}
		}
	}
}

// TestRecordGenerationLatency_ObservesHistogram はレイテンシがヒストグラムに記録されることを検証する。
func TestRecordGenerationLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGenerationLatency(3 * time.Second)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "adcraft_generation_latency_seconds" {
			found = true
			count := mf.GetMetric()[0].GetHistogram().GetSampleCount()
			if count != 1 {
				t.Errorf("sample count = %d, want 1", count)
			}
		}
	}
	if !found {
		t.Error("adcraft_generation_latency_seconds metric not found")
	}
}

// TestRecordImageFallback_IncrementsCounter は画像フォールバックカウンタが増加することを検証する。
func TestRecordImageFallback_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordImageFallback()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "adcraft_image_fallback_total" {
			found = true
			val := mf.GetMetric()[0].GetCounter().GetValue()
			if val != 1 {
				t.Errorf("image_fallback_total = %v, want 1", val)
			}
		}
	}
	if !found {
		t.Error("adcraft_image_fallback_total metric not found")
	}
}

// TestRecordHTTPStatus_LabelsByCode はHTTPステータスがコード別に記録されることを検証する。
func TestRecordHTTPStatus_LabelsByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)
	c.RecordHTTPStatus(200)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() == "adcraft_http_status_total" {
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 labeled metrics, got %d", len(mf.GetMetric()))
			}
		}
	}
}
