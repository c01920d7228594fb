package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cafepos/internal/config"
	"cafepos/internal/dto"
	"cafepos/internal/model"
	"cafepos/internal/repository"
	"cafepos/internal/unit"
	"cafepos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService manages the ingredient catalog. Every quantity mutation it
// performs is paired with exactly one ledger entry in the same transaction.
type InventoryService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error)
	List(ctx context.Context, filter dto.InventoryFilter) (*dto.InventoryListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error

	// AdjustStock applies a signed manual correction, clamped at zero, and
	// records the applied amount with kind ADJUST.
	AdjustStock(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error)
	// WriteOff removes spoiled stock with kind EXPIRED. Quantity zero writes
	// off everything on hand.
	WriteOff(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req dto.WriteOffRequest) (*dto.AdjustStockResponse, error)
	Ledger(ctx context.Context, id uuid.UUID, limit int) ([]dto.LedgerEntryResponse, error)
}

type inventoryService struct {
	repo       repository.InventoryRepository
	ledger     repository.LedgerRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewInventoryService(repo repository.InventoryRepository, ledger repository.LedgerRepository, dispatcher *worker.Dispatcher, cfg *config.Config) InventoryService {
	return &inventoryService{repo: repo, ledger: ledger, dispatcher: dispatcher, cfg: cfg}
}

func (s *inventoryService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	u := unit.Unit(req.Unit)
	if !unit.Valid(u) {
		return nil, fmt.Errorf("%w: unknown unit %q (valid: %s)", ErrValidation, req.Unit, joinUnits())
	}
	if req.Quantity.IsNegative() || req.MinQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity and min_quantity must not be negative", ErrValidation)
	}
	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: an item named %q already exists", ErrValidation, req.Name)
	}

	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		Name:        req.Name,
		Unit:        u,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		ExpiresAt:   expiresAt,
		Category:    req.Category,
		CostPerUnit: req.CostPerUnit,
		Active:      true,
	}

	// Initial stock is recorded as an ADD entry so the ledger reconciles from
	// day one.
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			return s.repo.Create(ctx, item)
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if item.Quantity.IsZero() {
			return nil
		}
		return s.ledger.CreateTx(tx, &model.LedgerEntry{
			InventoryItemID: item.ID,
			Kind:            model.LedgerAdd,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			QuantityBefore:  decimal.Zero,
			QuantityAfter:   item.Quantity,
			Note:            "initial stock",
			ActorID:         &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *inventoryService) Get(ctx context.Context, id uuid.UUID) (*dto.InventoryItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory item", ErrNotFound)
	}
	return itemToResponse(item), nil
}

func (s *inventoryService) List(ctx context.Context, filter dto.InventoryFilter) (*dto.InventoryListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		data = append(data, *itemToResponse(&items[i]))
	}
	return &dto.InventoryListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory item", ErrNotFound)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		newUnit := unit.Unit(*req.Unit)
		if !unit.Valid(newUnit) {
			return nil, fmt.Errorf("%w: unknown unit %q (valid: %s)", ErrValidation, *req.Unit, joinUnits())
		}
		if newUnit != item.Unit {
			// Changing the stock unit re-expresses the quantities in place.
			// Cross-dimension changes are rejected: they would silently
			// corrupt on-hand amounts and every recipe referencing the item.
			converted, err := unit.Convert(item.Quantity, item.Unit, newUnit)
			if err != nil {
				return nil, fmt.Errorf("%w: cannot change unit from %s to %s (different dimension)", ErrValidation, item.Unit, newUnit)
			}
			minConverted, err := unit.Convert(item.MinQuantity, item.Unit, newUnit)
			if err != nil {
				return nil, fmt.Errorf("%w: cannot change unit from %s to %s (different dimension)", ErrValidation, item.Unit, newUnit)
			}
			item.Quantity = converted
			item.MinQuantity = minConverted
			item.Unit = newUnit
		}
	}
	if req.MinQuantity != nil {
		if req.MinQuantity.IsNegative() {
			return nil, fmt.Errorf("%w: min_quantity must not be negative", ErrValidation)
		}
		item.MinQuantity = *req.MinQuantity
	}
	if req.ExpiresAt != nil {
		expiresAt, err := parseExpiry(req.ExpiresAt)
		if err != nil {
			return nil, err
		}
		item.ExpiresAt = expiresAt
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.CostPerUnit != nil {
		item.CostPerUnit = req.CostPerUnit
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.enqueueScan(ctx, "update")
	return itemToResponse(item), nil
}

func (s *inventoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: inventory item", ErrNotFound)
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: delta must not be zero", ErrValidation)
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory item", ErrNotFound)
	}

	resp, err := s.applyLedgered(ctx, item, actorID, req.Delta, model.LedgerAdjust, req.Note)
	if err != nil {
		return nil, err
	}
	s.enqueueScan(ctx, "adjust")
	return resp, nil
}

func (s *inventoryService) WriteOff(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req dto.WriteOffRequest) (*dto.AdjustStockResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory item", ErrNotFound)
	}

	qty := req.Quantity
	if qty.IsZero() {
		qty = item.Quantity // write off everything on hand
	}
	note := req.Note
	if note == "" {
		note = "write-off"
	}

	resp, err := s.applyLedgered(ctx, item, actorID, qty.Neg(), model.LedgerExpired, note)
	if err != nil {
		return nil, err
	}
	s.enqueueScan(ctx, "write_off")
	return resp, nil
}

// applyLedgered runs the clamped adjustment and its ledger entry in one
// transaction.
func (s *inventoryService) applyLedgered(ctx context.Context, item *model.InventoryItem, actorID uuid.UUID, delta decimal.Decimal, kind, note string) (*dto.AdjustStockResponse, error) {
	var before, after decimal.Decimal
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		before, after, err = s.repo.AdjustQuantityTx(tx, item.ID, delta)
		if err != nil {
			return err
		}
		return s.ledger.CreateTx(tx, &model.LedgerEntry{
			InventoryItemID: item.ID,
			Kind:            kind,
			Quantity:        after.Sub(before), // applied, signed
			Unit:            item.Unit,
			QuantityBefore:  before,
			QuantityAfter:   after,
			Note:            note,
			ActorID:         &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{
		ItemID:      item.ID.String(),
		Requested:   delta,
		Applied:     after.Sub(before),
		NewQuantity: after,
	}, nil
}

func (s *inventoryService) Ledger(ctx context.Context, id uuid.UUID, limit int) ([]dto.LedgerEntryResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: inventory item", ErrNotFound)
	}
	entries, err := s.ledger.History(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		var orderID *string
		if e.OrderID != nil {
			v := e.OrderID.String()
			orderID = &v
		}
		resp = append(resp, dto.LedgerEntryResponse{
			ID:             e.ID.String(),
			Kind:           e.Kind,
			Quantity:       e.Quantity,
			Unit:           string(e.Unit),
			QuantityBefore: e.QuantityBefore,
			QuantityAfter:  e.QuantityAfter,
			OrderID:        orderID,
			Note:           e.Note,
			CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (s *inventoryService) enqueueScan(ctx context.Context, trigger string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.EnqueueAlertScan(ctx, worker.AlertScanJobPayload{Trigger: trigger})
}

func parseExpiry(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: expires_at must be YYYY-MM-DD", ErrValidation)
	}
	return &t, nil
}

func joinUnits() string {
	all := unit.All()
	parts := make([]string, len(all))
	for i, u := range all {
		parts[i] = string(u)
	}
	return strings.Join(parts, ", ")
}

func itemToResponse(item *model.InventoryItem) *dto.InventoryItemResponse {
	var expires *string
	if item.ExpiresAt != nil {
		v := item.ExpiresAt.Format("2006-01-02")
		expires = &v
	}
	return &dto.InventoryItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Unit:        string(item.Unit),
		Quantity:    item.Quantity,
		MinQuantity: item.MinQuantity,
		ExpiresAt:   expires,
		Category:    item.Category,
		CostPerUnit: item.CostPerUnit,
		Active:      item.Active,
	}
}
