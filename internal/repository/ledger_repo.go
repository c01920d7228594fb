package repository

import (
	"context"

	"cafepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerRepository is append-only: entries are written once and never
// updated or deleted. History reads newest-first.
type LedgerRepository interface {
	Create(ctx context.Context, e *model.LedgerEntry) error
	CreateTx(tx *gorm.DB, e *model.LedgerEntry) error
	History(ctx context.Context, itemID uuid.UUID, limit int) ([]model.LedgerEntry, error)
	// SumByKind totals the signed quantities of one kind for one item, in
	// the item's stock unit. Used for reconciliation against the catalog.
	SumByKind(ctx context.Context, itemID uuid.UUID, kind string) (decimal.Decimal, error)
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

func (r *ledgerRepo) Create(ctx context.Context, e *model.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ledgerRepo) CreateTx(tx *gorm.DB, e *model.LedgerEntry) error {
	return tx.Create(e).Error
}

func (r *ledgerRepo) History(ctx context.Context, itemID uuid.UUID, limit int) ([]model.LedgerEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var entries []model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("inventory_item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepo) SumByKind(ctx context.Context, itemID uuid.UUID, kind string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("inventory_item_id = ? AND kind = ?", itemID, kind).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return sum, err
}
