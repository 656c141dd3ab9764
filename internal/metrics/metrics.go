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
// 検査サービスやワーカーから利用する。
type MetricsCollector interface {
	RecordInspection(source string)
	RecordParseFailure(source string)
	RecordFallbacks(kind string, count int)
	RecordItemsDecoded(count int)
	RecordFetchSuccess()
	RecordFetchFailure(reason string)
	RecordHTTPStatus(statusCode int)
	RecordFetchLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	inspections  *prometheus.CounterVec
	parseFail    *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	itemsDecoded prometheus.Counter
	fetchSuccess prometheus.Counter
	fetchFail    *prometheus.CounterVec
	httpStatus   *prometheus.CounterVec
	fetchLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		inspections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podfeed_inspections_total",
			Help: "入力元別のフィード検査数",
		}, []string{"source"}),
		parseFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podfeed_parse_fail_total",
			Help: "入力元別のフィードパース失敗数",
		}, []string{"source"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podfeed_fallback_fields_total",
			Help: "値の種類別のフォールバックになったフィールド数",
		}, []string{"kind"}),
		itemsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "podfeed_items_decoded_total",
			Help: "デコードしたエピソードの合計数",
		}),
		fetchSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "podfeed_fetch_success_total",
			Help: "フィードフェッチ成功の合計数",
		}),
		fetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podfeed_fetch_fail_total",
			Help: "失敗理由別のフィードフェッチ失敗数",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podfeed_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "podfeed_fetch_latency_seconds",
			Help:    "フィードフェッチのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.inspections,
		c.parseFail,
		c.fallbacks,
		c.itemsDecoded,
		c.fetchSuccess,
		c.fetchFail,
		c.httpStatus,
		c.fetchLatency,
	)

	return c
}

// RecordInspection は検査の実行を記録する。
func (c *Collector) RecordInspection(source string) {
	c.inspections.WithLabelValues(source).Inc()
}

// RecordParseFailure はパース失敗を記録する。
func (c *Collector) RecordParseFailure(source string) {
	c.parseFail.WithLabelValues(source).Inc()
}

// RecordFallbacks はフォールバックになったフィールド数を記録する。
func (c *Collector) RecordFallbacks(kind string, count int) {
	c.fallbacks.WithLabelValues(kind).Add(float64(count))
}

// RecordItemsDecoded はデコードしたエピソード数を記録する。
func (c *Collector) RecordItemsDecoded(count int) {
	c.itemsDecoded.Add(float64(count))
}

// RecordFetchSuccess はフェッチ成功を記録する。
func (c *Collector) RecordFetchSuccess() {
	c.fetchSuccess.Inc()
}

// RecordFetchFailure はフェッチ失敗を理由別に記録する。
// フィードURLはカーディナリティが上限なく増えるためラベルにしない。
func (c *Collector) RecordFetchFailure(reason string) {
	c.fetchFail.WithLabelValues(reason).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordFetchLatency はフェッチのレイテンシを記録する。
func (c *Collector) RecordFetchLatency(duration time.Duration) {
	c.fetchLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
