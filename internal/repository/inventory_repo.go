package repository

import (
	"context"

	"cafepos/internal/dto"
	"cafepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryRepository defines the data access contract for inventory items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	FindByName(ctx context.Context, name string) (*model.InventoryItem, error)
	List(ctx context.Context, filter dto.InventoryFilter) ([]model.InventoryItem, int64, error)
	ListActive(ctx context.Context) ([]model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	// AdjustQuantityTx applies a signed delta to the item's quantity in a
	// single UPDATE that clamps the result at zero and locks the row, so two
	// concurrent orders never read the same quantity. It returns the
	// quantity before and after; applied = after - before, which may be
	// smaller in magnitude than delta when the floor kicks in. Callers must
	// pair every call with exactly one ledger entry in the same transaction.
	AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) (before, after decimal.Decimal, err error)

	// FindByIDTx reads an item inside an open transaction.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *inventoryRepo) FindByName(ctx context.Context, name string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	return &item, err
}

func (r *inventoryRepo) List(ctx context.Context, filter dto.InventoryFilter) ([]model.InventoryItem, int64, error) {
	var items []model.InventoryItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.InventoryItem{})

	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *inventoryRepo) ListActive(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) Update(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Recipe lines referencing the item are removed in the same tx so no
		// recipe keeps consuming a retired ingredient.
		if err := tx.Where("inventory_item_id = ?", id).Delete(&model.RecipeLine{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.InventoryItem{}).Where("id = ?", id).Update("active", false).Error
	})
}

// AdjustQuantityTx performs the decrement-with-floor in the storage layer.
// FOR UPDATE on the subquery row serializes concurrent adjustments;
// GREATEST(..., 0) enforces the non-negative invariant.
func (r *inventoryRepo) AdjustQuantityTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var before, after decimal.Decimal
	row := tx.Raw(`
		UPDATE inventory_items i
		SET quantity = GREATEST(p.quantity + ?, 0), updated_at = now()
		FROM (SELECT id, quantity FROM inventory_items WHERE id = ? FOR UPDATE) p
		WHERE i.id = p.id
		RETURNING p.quantity, i.quantity`, delta, id).Row()
	if err := row.Scan(&before, &after); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return before, after, nil
}

func (r *inventoryRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := tx.First(&item, "id = ?", id).Error
	return &item, err
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
