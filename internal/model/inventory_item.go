package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cafepos/internal/unit"
)

// InventoryItem is a raw material tracked by the stock engine. Quantity is
// kept in the item's stock unit and never goes below zero: every decrement
// goes through the clamped UPDATE in the repository, and every mutation is
// paired with exactly one LedgerEntry written by the caller.
type InventoryItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"uniqueIndex;not null"`
	Unit        unit.Unit       `gorm:"not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	// MinQuantity is the low-stock threshold; 0 disables the alert.
	MinQuantity decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	ExpiresAt   *time.Time
	Category    string
	CostPerUnit *decimal.Decimal `gorm:"type:decimal(12,4)"`
	Active      bool             `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
