package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 作成されたイベントの総数
	EventsCreatedTotal prometheus.Counter

	// 検証で拒否された作成要求の数（kind: structural, business_rule）
	ValidationFailuresTotal *prometheus.CounterVec

	// イベント作成通知の発行結果（status: success, failed）
	PublishedMessagesTotal *prometheus.CounterVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		EventsCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "events_created_total",
				Help: "Total number of events created",
			},
		),
		ValidationFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_validation_failures_total",
				Help: "Total number of event submissions rejected by validation",
			},
			[]string{"kind"},
		),
		PublishedMessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_messages_published_total",
				Help: "Total number of event.created messages by publish result",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EventsCreatedTotal,
		m.ValidationFailuresTotal,
		m.PublishedMessagesTotal,
	)

	return m
}

// RecordEventCreated はイベント作成を記録する。nil の場合は何もしない
func (m *Metrics) RecordEventCreated() {
	if m == nil {
		return
	}
	m.EventsCreatedTotal.Inc()
}

// RecordValidationFailure は検証失敗を種別ごとに記録する
func (m *Metrics) RecordValidationFailure(kind string) {
	if m == nil {
		return
	}
	m.ValidationFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordPublish はメッセージ発行の結果を記録する
func (m *Metrics) RecordPublish(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.PublishedMessagesTotal.WithLabelValues(status).Inc()
}
