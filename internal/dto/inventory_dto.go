package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateInventoryItemRequest struct {
	Name        string           `json:"name"          validate:"required,min=2,max=120"`
	Unit        string           `json:"unit"          validate:"required"`
	Quantity    decimal.Decimal  `json:"quantity"      validate:"min=0"`
	MinQuantity decimal.Decimal  `json:"min_quantity"  validate:"min=0"`
	ExpiresAt   *string          `json:"expires_at"    validate:"omitempty,datetime=2006-01-02"`
	Category    string           `json:"category"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit" validate:"omitempty,min=0"`
}

type UpdateInventoryItemRequest struct {
	Name        *string          `json:"name"          validate:"omitempty,min=2,max=120"`
	Unit        *string          `json:"unit"`
	MinQuantity *decimal.Decimal `json:"min_quantity"  validate:"omitempty,min=0"`
	ExpiresAt   *string          `json:"expires_at"    validate:"omitempty,datetime=2006-01-02"`
	Category    *string          `json:"category"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit" validate:"omitempty,min=0"`
}

// AdjustStockRequest is a manual administrative correction. Delta is signed;
// the resulting quantity never goes below zero and the applied amount is
// ledger-logged with kind ADJUST.
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta" validate:"required"`
	Note  string          `json:"note"  validate:"required,min=3,max=255"`
}

// WriteOffRequest removes spoiled stock; ledger-logged with kind EXPIRED.
// Quantity zero writes off everything on hand.
type WriteOffRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"min=0"`
	Note     string          `json:"note"     validate:"max=255"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type InventoryFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Active   string `form:"active"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryItemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Unit        string           `json:"unit"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinQuantity decimal.Decimal  `json:"min_quantity"`
	ExpiresAt   *string          `json:"expires_at"`
	Category    string           `json:"category"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	Active      bool             `json:"active"`
}

type InventoryListResponse struct {
	Data  []InventoryItemResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// AdjustStockResponse reports what was actually applied: a clamped downward
// adjustment applies less than requested.
type AdjustStockResponse struct {
	ItemID      string          `json:"item_id"`
	Requested   decimal.Decimal `json:"requested"`
	Applied     decimal.Decimal `json:"applied"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}
