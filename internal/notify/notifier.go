// Package notify defines the notification interface and implementations
// for new-sale alert delivery.
package notify

import (
	"context"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// SaleAlert carries one newly seen sale of a watched search.
type SaleAlert struct {
	WatchName string
	Item      domain.Item
	// Currency the sale price is quoted in. Empty means USD.
	Currency domain.Currency
	Sale     domain.Sale
}

// Notifier defines the interface for sending new-sale alerts.
type Notifier interface {
	SendAlert(ctx context.Context, alert *SaleAlert) error
	SendBatchAlert(ctx context.Context, alerts []SaleAlert, watchName string) error
}
