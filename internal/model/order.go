package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable record of a completed sale. Refunds and voids are
// not supported; once the consumption transaction commits, neither the order
// nor its lines change.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketNumber  int64           `gorm:"uniqueIndex;not null"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ServiceCharge decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"not null"` // "cash" | "card" | "transfer"
	CreatedAt     time.Time

	Lines []OrderLine `gorm:"foreignKey:OrderID"`
	User  *User       `gorm:"foreignKey:UserID"`
}

// OrderLine is one sold menu item within an order.
type OrderLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty        int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
}
