package dto

import "github.com/shopspring/decimal"

// AlertItem is one inventory item flagged by the alert evaluator.
type AlertItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	ExpiresAt   *string         `json:"expires_at,omitempty"`
}

// AlertReport is the point-in-time alert classification. The three sets are
// independent: an item low on stock and near expiry appears in both.
type AlertReport struct {
	LowStock     []AlertItem `json:"low_stock"`
	ExpiringSoon []AlertItem `json:"expiring_soon"`
	Expired      []AlertItem `json:"expired"`
	GeneratedAt  string      `json:"generated_at"`
}
