package repository

import (
	"context"

	"cafepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(ctx context.Context, m *model.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	List(ctx context.Context, includeInactive bool) ([]model.MenuItem, error)
	Update(ctx context.Context, m *model.MenuItem) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *menuRepo) List(ctx context.Context, includeInactive bool) ([]model.MenuItem, error) {
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	var items []model.MenuItem
	err := q.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *menuRepo) Update(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cascade: a retired menu item keeps its sold order lines but loses
		// its recipe.
		if err := tx.Where("menu_item_id = ?", id).Delete(&model.RecipeLine{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.MenuItem{}).Where("id = ?", id).Update("active", false).Error
	})
}
