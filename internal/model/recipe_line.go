package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cafepos/internal/unit"
)

// RecipeLine maps one menu item to one inventory item: selling one unit of
// the menu item consumes QtyPerUnit of the inventory item, expressed in Unit.
// Unit may differ from the inventory item's stock unit but must share its
// dimension; the consumption processor converts at sale time.
type RecipeLine struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuItemID      uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_menu_inventory;not null"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_menu_inventory;not null"`
	QtyPerUnit      decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Unit            unit.Unit       `gorm:"not null"`
	CreatedAt       time.Time

	MenuItem      *MenuItem      `gorm:"foreignKey:MenuItemID"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
}
