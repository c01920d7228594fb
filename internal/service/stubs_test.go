package service

import (
	"context"
	"errors"
	"sort"

	"cafepos/internal/dto"
	"cafepos/internal/model"
	"cafepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repository implementations. DB() returns nil, which makes runTx
// call the transaction body directly.

type stubInventoryRepo struct {
	items map[uuid.UUID]*model.InventoryItem
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *stubInventoryRepo) add(item model.InventoryItem) uuid.UUID {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Active = true
	r.items[item.ID] = &item
	return item.ID
}

func (r *stubInventoryRepo) Create(_ context.Context, item *model.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return item, nil
}

func (r *stubInventoryRepo) FindByName(_ context.Context, name string) (*model.InventoryItem, error) {
	for _, item := range r.items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubInventoryRepo) List(_ context.Context, _ dto.InventoryFilter) ([]model.InventoryItem, int64, error) {
	items := r.sorted()
	return items, int64(len(items)), nil
}

func (r *stubInventoryRepo) ListActive(_ context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	for _, it := range r.sorted() {
		if it.Active {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *stubInventoryRepo) sorted() []model.InventoryItem {
	items := make([]model.InventoryItem, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

func (r *stubInventoryRepo) Update(_ context.Context, item *model.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubInventoryRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("record not found")
	}
	item.Active = false
	return nil
}

func (r *stubInventoryRepo) AdjustQuantityTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	item, ok := r.items[id]
	if !ok {
		return decimal.Zero, decimal.Zero, errors.New("record not found")
	}
	before := item.Quantity
	after := before.Add(delta)
	if after.IsNegative() {
		after = decimal.Zero
	}
	item.Quantity = after
	return before, after, nil
}

func (r *stubInventoryRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.InventoryItem, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

type stubLedgerRepo struct {
	entries    []model.LedgerEntry
	failCreate bool
}

func (r *stubLedgerRepo) Create(_ context.Context, e *model.LedgerEntry) error {
	return r.CreateTx(nil, e)
}

func (r *stubLedgerRepo) CreateTx(_ *gorm.DB, e *model.LedgerEntry) error {
	if r.failCreate {
		return errors.New("ledger write failed")
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubLedgerRepo) History(_ context.Context, itemID uuid.UUID, _ int) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].InventoryItemID == itemID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *stubLedgerRepo) SumByKind(_ context.Context, itemID uuid.UUID, kind string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.entries {
		if e.InventoryItemID == itemID && e.Kind == kind {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

// byKind filters recorded entries for assertions.
func (r *stubLedgerRepo) byKind(kind string) []model.LedgerEntry {
	var out []model.LedgerEntry
	for _, e := range r.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

var _ repository.LedgerRepository = (*stubLedgerRepo)(nil)

type stubRecipeRepo struct {
	lines map[uuid.UUID][]model.RecipeLine // keyed by menu item id
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{lines: make(map[uuid.UUID][]model.RecipeLine)}
}

func (r *stubRecipeRepo) ListByMenuItem(_ context.Context, menuItemID uuid.UUID) ([]model.RecipeLine, error) {
	return r.lines[menuItemID], nil
}

func (r *stubRecipeRepo) ListByMenuItemTx(_ *gorm.DB, menuItemID uuid.UUID) ([]model.RecipeLine, error) {
	return r.lines[menuItemID], nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RecipeLine, error) {
	for _, lines := range r.lines {
		for i := range lines {
			if lines[i].ID == id {
				return &lines[i], nil
			}
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubRecipeRepo) ReplaceAll(_ context.Context, menuItemID uuid.UUID, lines []model.RecipeLine) error {
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
	}
	r.lines[menuItemID] = lines
	return nil
}

func (r *stubRecipeRepo) Remove(_ context.Context, id uuid.UUID) error {
	for menuID, lines := range r.lines {
		for i := range lines {
			if lines[i].ID == id {
				r.lines[menuID] = append(lines[:i], lines[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("record not found")
}

func (r *stubRecipeRepo) RemoveByMenuItemTx(_ *gorm.DB, menuItemID uuid.UUID) error {
	delete(r.lines, menuItemID)
	return nil
}

var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

type stubMenuRepo struct {
	items map[uuid.UUID]*model.MenuItem
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{items: make(map[uuid.UUID]*model.MenuItem)}
}

func (r *stubMenuRepo) add(m model.MenuItem) uuid.UUID {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Active = true
	r.items[m.ID] = &m
	return m.ID
}

func (r *stubMenuRepo) Create(_ context.Context, m *model.MenuItem) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return m, nil
}

func (r *stubMenuRepo) List(_ context.Context, includeInactive bool) ([]model.MenuItem, error) {
	var items []model.MenuItem
	for _, m := range r.items {
		if m.Active || includeInactive {
			items = append(items, *m)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *model.MenuItem) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	m, ok := r.items[id]
	if !ok {
		return errors.New("record not found")
	}
	m.Active = false
	return nil
}

var _ repository.MenuRepository = (*stubMenuRepo)(nil)

type stubOrderRepo struct {
	orders    map[uuid.UUID]*model.Order
	ticketSeq int64
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, order *model.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders[order.ID] = order
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, _ dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	for _, o := range r.orders {
		orders = append(orders, *o)
	}
	return orders, int64(len(orders)), nil
}

func (r *stubOrderRepo) NextTicketNumber(_ *gorm.DB) (int64, error) {
	r.ticketSeq++
	return r.ticketSeq, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)
