package repository

import (
	"context"
	"time"

	"cafepos/internal/dto"
	"cafepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository persists immutable sale records. There is deliberately no
// update or delete method.
type OrderRepository interface {
	CreateTx(tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	NextTicketNumber(tx *gorm.DB) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").Preload("Lines.MenuItem").
		First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	day := time.Now()
	if filter.Date != "" {
		if parsed, err := time.Parse("2006-01-02", filter.Date); err == nil {
			day = parsed
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	q = q.Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var orders []model.Order
	err := q.Preload("Lines").Preload("Lines.MenuItem").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

// NextTicketNumber draws from a postgres sequence so concurrent orders never
// collide on the human-facing ticket number.
func (r *orderRepo) NextTicketNumber(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Raw(`SELECT nextval('order_ticket_seq')`).Scan(&n).Error
	return n, err
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
