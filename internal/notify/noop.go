package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

var _ Notifier = (*NoOpNotifier)(nil)

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendAlert logs and discards a single alert.
func (n *NoOpNotifier) SendAlert(_ context.Context, alert *SaleAlert) error {
	n.log.Debug("notification discarded (no backend configured)",
		"watch", alert.WatchName,
		"item", string(alert.Item),
		"pattern", alert.Sale.Pattern,
	)
	return nil
}

// SendBatchAlert logs and discards a batch of alerts.
func (n *NoOpNotifier) SendBatchAlert(_ context.Context, alerts []SaleAlert, watchName string) error {
	n.log.Debug("batch notification discarded (no backend configured)",
		"watch", watchName,
		"count", len(alerts),
	)
	return nil
}
