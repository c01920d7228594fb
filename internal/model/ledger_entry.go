package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cafepos/internal/unit"
)

// Ledger entry kinds. SALE entries carry the order that caused them; the sum
// of an item's SALE quantities over a period must reconcile with the
// quantity decrease observed in the catalog over the same period.
const (
	LedgerAdd     = "ADD"
	LedgerRemove  = "REMOVE"
	LedgerAdjust  = "ADJUST"
	LedgerSale    = "SALE"
	LedgerExpired = "EXPIRED"
)

// LedgerEntry is one immutable stock mutation record. Quantity is signed
// (negative = deduction) and always expressed in the item's stock unit at
// write time. Rows are append-only: there is no update or delete path.
type LedgerEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind            string          `gorm:"not null;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Unit            unit.Unit       `gorm:"not null"`
	QuantityBefore  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	QuantityAfter   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	OrderID         *uuid.UUID      `gorm:"type:uuid;index"`
	Note            string
	ActorID         *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID"`
}

// TableName overrides GORM's default pluralization.
func (LedgerEntry) TableName() string { return "ledger_entries" }
