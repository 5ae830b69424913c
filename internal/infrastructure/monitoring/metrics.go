package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the editing engine.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Editing metrics
	OperationsApplied *prometheus.CounterVec
	OperationsSkipped prometheus.Counter
	UndoTotal         prometheus.Counter
	RedoTotal         prometheus.Counter
	HistoryDepth      prometheus.Gauge

	// Interpretation metrics
	Interpretations *prometheus.CounterVec

	// Import / persistence metrics
	ImportsTotal *prometheus.CounterVec
	SavesTotal   *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates and registers the metrics collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		OperationsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_operations_applied_total",
				Help: "Total number of document operations applied",
			},
			[]string{"op"},
		),
		OperationsSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_operations_skipped_total",
				Help: "Operations skipped for unknown kinds or unresolved references",
			},
		),
		UndoTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_undo_total",
				Help: "Total number of undo calls that restored a snapshot",
			},
		),
		RedoTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_redo_total",
				Help: "Total number of redo calls that restored a snapshot",
			},
		),
		HistoryDepth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_history_depth",
				Help: "Current depth of the undo stack",
			},
		),

		Interpretations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_interpretations_total",
				Help: "Command interpretations by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),

		ImportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_blueprint_imports_total",
				Help: "Blueprint imports by status",
			},
			[]string{"status"},
		),
		SavesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_document_saves_total",
				Help: "Document persistence attempts by status",
			},
			[]string{"status"},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_uptime_seconds",
				Help: "Engine uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOperation records one applied document operation.
func (m *Metrics) RecordOperation(op string) {
	if m == nil {
		return
	}
	m.OperationsApplied.WithLabelValues(op).Inc()
}

// RecordSkipped records one skipped operation.
func (m *Metrics) RecordSkipped() {
	if m == nil {
		return
	}
	m.OperationsSkipped.Inc()
}

// RecordInterpretation records one interpretation attempt.
func (m *Metrics) RecordInterpretation(strategy, outcome string) {
	if m == nil {
		return
	}
	m.Interpretations.WithLabelValues(strategy, outcome).Inc()
}

// RecordUndo records a successful undo and the resulting stack depth.
func (m *Metrics) RecordUndo(depth int) {
	if m == nil {
		return
	}
	m.UndoTotal.Inc()
	m.HistoryDepth.Set(float64(depth))
}

// RecordRedo records a successful redo and the resulting stack depth.
func (m *Metrics) RecordRedo(depth int) {
	if m == nil {
		return
	}
	m.RedoTotal.Inc()
	m.HistoryDepth.Set(float64(depth))
}

// RecordImport records a blueprint import outcome.
func (m *Metrics) RecordImport(status string) {
	if m == nil {
		return
	}
	m.ImportsTotal.WithLabelValues(status).Inc()
}

// RecordSave records a persistence outcome.
func (m *Metrics) RecordSave(status string) {
	if m == nil {
		return
	}
	m.SavesTotal.WithLabelValues(status).Inc()
}

// RecordWSConnect tracks a new WebSocket connection.
func (m *Metrics) RecordWSConnect() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// RecordWSDisconnect tracks a closed WebSocket connection.
func (m *Metrics) RecordWSDisconnect() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}

// RecordWSMessage records one WebSocket message by direction and type.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}
