// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層やミドルウェアから利用する。
type MetricsCollector interface {
	RecordGenerationSuccess(contentType string)
	RecordGenerationFailure(contentType string)
	RecordGenerationLatency(duration time.Duration)
	RecordImageFallback()
	RecordSessionCreated()
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	generationSuccess *prometheus.CounterVec
	generationFail    *prometheus.CounterVec
	generationLatency prometheus.Histogram
	imageFallback     prometheus.Counter
	sessionsCreated   prometheus.Counter
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generationSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adcraft_generation_success_total",
			Help: "コンテンツ生成成功のコンテンツタイプ別合計数",
		}, []string{"content_type"}),
		generationFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adcraft_generation_fail_total",
			Help: "コンテンツ生成失敗のコンテンツタイプ別合計数",
		}, []string{"content_type"}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "adcraft_generation_latency_seconds",
			Help:    "コンテンツ生成のレイテンシ（秒）",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		imageFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adcraft_image_fallback_total",
			Help: "画像生成失敗によりテキストのみで返却した合計数",
		}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adcraft_sessions_created_total",
			Help: "発行されたセッションの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adcraft_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.generationSuccess,
		c.generationFail,
		c.generationLatency,
		c.imageFallback,
		c.sessionsCreated,
		c.httpStatus,
	)

	return c
}

// RecordGenerationSuccess はコンテンツ生成成功を記録する。
func (c *Collector) RecordGenerationSuccess(contentType string) {
	c.generationSuccess.WithLabelValues(contentType).Inc()
}

// RecordGenerationFailure はコンテンツ生成失敗を記録する。
func (c *Collector) RecordGenerationFailure(contentType string) {
	c.generationFail.WithLabelValues(contentType).Inc()
}

// RecordGenerationLatency はコンテンツ生成のレイテンシを記録する。
func (c *Collector) RecordGenerationLatency(duration time.Duration) {
	c.generationLatency.Observe(duration.Seconds())
}

// RecordImageFallback は画像生成失敗によるテキストのみ返却を記録する。
func (c *Collector) RecordImageFallback() {
	c.imageFallback.Inc()
}

// RecordSessionCreated はセッション発行を記録する。
func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
