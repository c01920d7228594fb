package service

import (
	"context"
	"errors"
	"fmt"

	"cafepos/internal/config"
	"cafepos/internal/dto"
	"cafepos/internal/model"
	"cafepos/internal/repository"
	"cafepos/internal/unit"
	"cafepos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService is the consumption processor: recording a sale and deducting
// its ingredients is one atomic unit of work.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
}

type orderService struct {
	orders     repository.OrderRepository
	menu       repository.MenuRepository
	recipes    repository.RecipeRepository
	inventory  repository.InventoryRepository
	ledger     repository.LedgerRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewOrderService(
	orders repository.OrderRepository,
	menu repository.MenuRepository,
	recipes repository.RecipeRepository,
	inventory repository.InventoryRepository,
	ledger repository.LedgerRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) OrderService {
	return &orderService{
		orders:     orders,
		menu:       menu,
		recipes:    recipes,
		inventory:  inventory,
		ledger:     ledger,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── PlaceOrder ────────────────────────────────────────────────────────────────
// One ACID transaction per order:
//   1. Resolve menu items and totals (pre-flight, outside TX)
//   2. BEGIN TX: next ticket, insert order + lines
//   3. For each line: recipe lookup → unit conversion → clamped stock
//      decrement → one SALE ledger entry recording the APPLIED amount
//   4. COMMIT — any storage error rolls back the order and every deduction
//   5. (async) enqueue alert re-evaluation
//
// Lines whose menu item has no recipe produce no stock movement. Short stock
// and unit mismatches are handled per the configured policies.

func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	type resolvedLine struct {
		menuItemID uuid.UUID
		name       string
		price      decimal.Decimal
		qty        int
		subtotal   decimal.Decimal
	}

	// 1. Resolve menu items and calculate totals (pre-flight, outside TX)
	var resolved []resolvedLine
	subtotal := decimal.Zero
	for _, line := range req.Lines {
		mid, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid menu_item_id: %w", err)
		}
		m, err := s.menu.FindByID(ctx, mid)
		if err != nil {
			return nil, fmt.Errorf("menu item %s not found", line.MenuItemID)
		}
		if !m.Active {
			return nil, fmt.Errorf("menu item %s is inactive and cannot be sold", m.Name)
		}
		lineSubtotal := m.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		subtotal = subtotal.Add(lineSubtotal)
		resolved = append(resolved, resolvedLine{
			menuItemID: mid,
			name:       m.Name,
			price:      m.Price,
			qty:        line.Qty,
			subtotal:   lineSubtotal,
		})
	}

	taxAmount := subtotal.Mul(decimal.NewFromFloat(s.cfg.TaxPct)).Div(decimal.NewFromInt(100)).Round(2)
	serviceCharge := subtotal.Mul(decimal.NewFromFloat(s.cfg.ServiceChargePct)).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(taxAmount).Add(serviceCharge)

	// 2–4. ACID transaction
	var order model.Order
	var consumed []dto.ConsumedIngredient
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		ticketNum, err := s.orders.NextTicketNumber(tx)
		if err != nil {
			return err
		}

		order = model.Order{
			TicketNumber:  ticketNum,
			UserID:        userID,
			Subtotal:      subtotal,
			TaxAmount:     taxAmount,
			ServiceCharge: serviceCharge,
			Total:         total,
			PaymentMethod: req.PaymentMethod,
		}
		for _, r := range resolved {
			order.Lines = append(order.Lines, model.OrderLine{
				MenuItemID: r.menuItemID,
				Qty:        r.qty,
				UnitPrice:  r.price,
				Subtotal:   r.subtotal,
			})
		}
		if err := s.orders.CreateTx(tx, &order); err != nil {
			return err
		}

		consumed = consumed[:0]
		for _, r := range resolved {
			lineConsumed, err := s.consumeLine(tx, &order, r.menuItemID, r.qty)
			if err != nil {
				return err
			}
			consumed = append(consumed, lineConsumed...)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrInsufficientStock) || errors.Is(txErr, errUnitMismatchLine) {
			return nil, txErr
		}
		log.Error().Err(txErr).Msg("order transaction failed")
		return nil, ErrOrderFailed
	}

	// 5. Async alert re-evaluation (best-effort — fire & forget)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueAlertScan(ctx, worker.AlertScanJobPayload{
			Trigger: "order",
			OrderID: order.ID.String(),
		})
	}

	resp := orderToResponse(&order)
	resp.Consumed = consumed
	for i, r := range resolved {
		resp.Lines[i].MenuItem = r.name
	}
	return resp, nil
}

// errUnitMismatchLine marks an order aborted under the "fail" mismatch
// policy. The default "skip" policy never produces it.
var errUnitMismatchLine = errors.New("recipe line unit does not match ingredient stock unit")

// consumeLine deducts every recipe ingredient for one sold line.
// Must run inside the order transaction.
func (s *orderService) consumeLine(tx *gorm.DB, order *model.Order, menuItemID uuid.UUID, qtySold int) ([]dto.ConsumedIngredient, error) {
	lines, err := s.recipes.ListByMenuItemTx(tx, menuItemID)
	if err != nil {
		return nil, err
	}
	// No recipe — the menu item does not track ingredients.
	if len(lines) == 0 {
		return nil, nil
	}

	var consumed []dto.ConsumedIngredient
	for _, line := range lines {
		item, err := s.inventory.FindByIDTx(tx, line.InventoryItemID)
		if err != nil {
			return nil, err
		}

		required := line.QtyPerUnit.Mul(decimal.NewFromInt(int64(qtySold)))
		requiredInStock, err := unit.Convert(required, line.Unit, item.Unit)
		if err != nil {
			var mismatch *unit.ErrUnitMismatch
			if errors.As(err, &mismatch) && s.cfg.UnitMismatchPolicy != config.MismatchPolicyFail {
				// Recipe line is unusable; the rest of the order proceeds.
				log.Error().
					Str("menu_item_id", menuItemID.String()).
					Str("inventory_item_id", item.ID.String()).
					Str("recipe_unit", string(line.Unit)).
					Str("stock_unit", string(item.Unit)).
					Msg("skipping recipe line: unit dimension mismatch")
				continue
			}
			if errors.As(err, &mismatch) {
				return nil, fmt.Errorf("%w: %s requires %s, stocked in %s",
					errUnitMismatchLine, item.Name, line.Unit, item.Unit)
			}
			return nil, err
		}

		before, after, err := s.inventory.AdjustQuantityTx(tx, item.ID, requiredInStock.Neg())
		if err != nil {
			return nil, err
		}
		applied := before.Sub(after) // positive amount actually deducted

		if s.cfg.StockPolicy == config.StockPolicyReject && applied.LessThan(requiredInStock) {
			// Rolls back every deduction already made for this order.
			return nil, fmt.Errorf("%w: %s has %s %s, order needs %s",
				ErrInsufficientStock, item.Name, before, item.Unit, requiredInStock)
		}

		entry := &model.LedgerEntry{
			InventoryItemID: item.ID,
			Kind:            model.LedgerSale,
			Quantity:        applied.Neg(), // signed: deduction
			Unit:            item.Unit,
			QuantityBefore:  before,
			QuantityAfter:   after,
			OrderID:         &order.ID,
			Note:            fmt.Sprintf("Order #%d", order.TicketNumber),
			ActorID:         &order.UserID,
		}
		if err := s.ledger.CreateTx(tx, entry); err != nil {
			return nil, err
		}

		consumed = append(consumed, dto.ConsumedIngredient{
			InventoryItemID: item.ID.String(),
			Name:            item.Name,
			Required:        requiredInStock,
			Applied:         applied,
			Unit:            string(item.Unit),
			Clamped:         applied.LessThan(requiredInStock),
		})
	}
	return consumed, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	return orderToResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *orderToResponse(&o))
	}
	return &dto.OrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		name := ""
		if line.MenuItem != nil {
			name = line.MenuItem.Name
		}
		lines = append(lines, dto.OrderLineResponse{
			MenuItem:  name,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID.String(),
		TicketNumber:  o.TicketNumber,
		Lines:         lines,
		Subtotal:      o.Subtotal,
		TaxAmount:     o.TaxAmount,
		ServiceCharge: o.ServiceCharge,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
