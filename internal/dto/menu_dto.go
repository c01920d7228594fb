package dto

import "github.com/shopspring/decimal"

type CreateMenuItemRequest struct {
	Name     string          `json:"name"     validate:"required,min=2,max=120"`
	Price    decimal.Decimal `json:"price"    validate:"required"`
	Category string          `json:"category"`
}

type UpdateMenuItemRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=2,max=120"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
}

type MenuItemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Active   bool            `json:"active"`
}
