package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WebhookMetrics records the outcome of every gateway notification delivery.
type WebhookMetrics struct {
	processed prometheus.Counter
	duplicate prometheus.Counter
	skipped   prometheus.Counter
	rejected  *prometheus.CounterVec
}

// NewWebhookMetrics registers the webhook counters on the provided registerer.
func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	if reg == nil {
		return &WebhookMetrics{}
	}
	processed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_notifications_processed_total",
		Help: "Notifications applied to an order record.",
	})
	duplicate := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_notifications_duplicate_total",
		Help: "Replayed notifications acknowledged without reprocessing.",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_notifications_terminal_skipped_total",
		Help: "Notifications ignored because the order was already terminal.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_notifications_rejected_total",
		Help: "Notifications rejected before any write.",
	}, []string{"reason"})
	reg.MustRegister(processed, duplicate, skipped, rejected)
	return &WebhookMetrics{
		processed: processed,
		duplicate: duplicate,
		skipped:   skipped,
		rejected:  rejected,
	}
}

// IncProcessed counts a successfully reconciled notification.
func (m *WebhookMetrics) IncProcessed() {
	if m == nil || m.processed == nil {
		return
	}
	m.processed.Inc()
}

// IncDuplicate counts a replayed notification.
func (m *WebhookMetrics) IncDuplicate() {
	if m == nil || m.duplicate == nil {
		return
	}
	m.duplicate.Inc()
}

// IncTerminalSkipped counts a notification dropped by the terminal guard.
func (m *WebhookMetrics) IncTerminalSkipped() {
	if m == nil || m.skipped == nil {
		return
	}
	m.skipped.Inc()
}

// IncRejected counts a rejected notification with the given reason.
func (m *WebhookMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejected.WithLabelValues(reason).Inc()
}
