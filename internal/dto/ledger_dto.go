package dto

import "github.com/shopspring/decimal"

type LedgerEntryResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	OrderID        *string         `json:"order_id,omitempty"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      string          `json:"created_at"`
}
