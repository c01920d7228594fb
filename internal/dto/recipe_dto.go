package dto

import "github.com/shopspring/decimal"

// RecipeIngredientRequest is one line of a menu item's recipe.
type RecipeIngredientRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required,uuid"`
	QtyPerUnit      decimal.Decimal `json:"qty_per_unit"      validate:"required"`
	Unit            string          `json:"unit"              validate:"required"`
}

// SetRecipeRequest replaces a menu item's recipe wholesale. Sending an empty
// ingredient list clears the recipe.
type SetRecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
}

type RecipeLineResponse struct {
	ID                string          `json:"id"`
	MenuItemID        string          `json:"menu_item_id"`
	InventoryItemID   string          `json:"inventory_item_id"`
	InventoryItemName string          `json:"inventory_item_name,omitempty"`
	QtyPerUnit        decimal.Decimal `json:"qty_per_unit"`
	Unit              string          `json:"unit"`
}
