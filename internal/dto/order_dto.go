package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Qty        int    `json:"qty"          validate:"required,min=1"`
}

type PlaceOrderRequest struct {
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Lines         []OrderLineRequest `json:"lines"          validate:"required,min=1,dive"`
}

type OrderFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD, default today
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderLineResponse struct {
	MenuItem  string          `json:"menu_item"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ConsumedIngredient reports one stock deduction made for the order. Applied
// may be less than Required when the deduction clamped at zero stock.
type ConsumedIngredient struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Name            string          `json:"name"`
	Required        decimal.Decimal `json:"required"`
	Applied         decimal.Decimal `json:"applied"`
	Unit            string          `json:"unit"`
	Clamped         bool            `json:"clamped"`
}

type OrderResponse struct {
	ID            string               `json:"id"`
	TicketNumber  int64                `json:"ticket_number"`
	Lines         []OrderLineResponse  `json:"lines"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxAmount     decimal.Decimal      `json:"tax_amount"`
	ServiceCharge decimal.Decimal      `json:"service_charge"`
	Total         decimal.Decimal      `json:"total"`
	PaymentMethod string               `json:"payment_method"`
	Consumed      []ConsumedIngredient `json:"consumed,omitempty"`
	CreatedAt     string               `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
