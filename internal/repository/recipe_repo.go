package repository

import (
	"context"

	"cafepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository manages the menu-item → inventory-item mapping.
// One row per (menu item, inventory item) pair, enforced by a unique index.
type RecipeRepository interface {
	ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.RecipeLine, error)
	ListByMenuItemTx(tx *gorm.DB, menuItemID uuid.UUID) ([]model.RecipeLine, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.RecipeLine, error)
	// ReplaceAll deletes the menu item's recipe and inserts lines in one
	// transaction — the "edit the whole ingredient list" operation.
	ReplaceAll(ctx context.Context, menuItemID uuid.UUID, lines []model.RecipeLine) error
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveByMenuItemTx(tx *gorm.DB, menuItemID uuid.UUID) error
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

func (r *recipeRepo) ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.RecipeLine, error) {
	return r.list(r.db.WithContext(ctx), menuItemID)
}

func (r *recipeRepo) ListByMenuItemTx(tx *gorm.DB, menuItemID uuid.UUID) ([]model.RecipeLine, error) {
	return r.list(tx, menuItemID)
}

func (r *recipeRepo) list(q *gorm.DB, menuItemID uuid.UUID) ([]model.RecipeLine, error) {
	var lines []model.RecipeLine
	// Stable order so recipe listings and consumption are deterministic.
	err := q.Preload("InventoryItem").
		Where("menu_item_id = ?", menuItemID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *recipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RecipeLine, error) {
	var line model.RecipeLine
	err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error
	return &line, err
}

func (r *recipeRepo) ReplaceAll(ctx context.Context, menuItemID uuid.UUID, lines []model.RecipeLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&model.RecipeLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

func (r *recipeRepo) Remove(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RecipeLine{}, "id = ?", id).Error
}

func (r *recipeRepo) RemoveByMenuItemTx(tx *gorm.DB, menuItemID uuid.UUID) error {
	return tx.Where("menu_item_id = ?", menuItemID).Delete(&model.RecipeLine{}).Error
}
