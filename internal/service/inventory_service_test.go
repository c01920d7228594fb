package service

import (
	"context"
	"testing"

	"cafepos/internal/config"
	"cafepos/internal/dto"
	"cafepos/internal/model"
	"cafepos/internal/unit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture() (*stubInventoryRepo, *stubLedgerRepo, InventoryService) {
	repo := newStubInventoryRepo()
	ledger := &stubLedgerRepo{}
	svc := NewInventoryService(repo, ledger, nil, &config.Config{
		StockPolicy:        config.StockPolicyClamp,
		UnitMismatchPolicy: config.MismatchPolicySkip,
	})
	return repo, ledger, svc
}

func TestCreateRejectsUnknownUnit(t *testing.T) {
	_, _, svc := newInventoryFixture()
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateInventoryItemRequest{
		Name: "flour", Unit: "oz", Quantity: dec("10"),
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	repo, _, svc := newInventoryFixture()
	repo.add(model.InventoryItem{Name: "flour", Unit: unit.Gram})

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateInventoryItemRequest{
		Name: "flour", Unit: "g",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsBadExpiry(t *testing.T) {
	_, _, svc := newInventoryFixture()
	bad := "31/12/2026"
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateInventoryItemRequest{
		Name: "milk", Unit: "l", ExpiresAt: &bad,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAdjustStockWritesPairedLedgerEntry(t *testing.T) {
	repo, ledger, svc := newInventoryFixture()
	actor := uuid.New()
	id := repo.add(model.InventoryItem{Name: "beans", Unit: unit.Gram, Quantity: dec("100")})

	resp, err := svc.AdjustStock(context.Background(), id, actor, dto.AdjustStockRequest{
		Delta: dec("-30"), Note: "spillage during grinding",
	})
	require.NoError(t, err)
	assert.True(t, resp.Applied.Equal(dec("-30")))
	assert.True(t, resp.NewQuantity.Equal(dec("70")))

	entries := ledger.byKind(model.LedgerAdjust)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Quantity.Equal(dec("-30")))
	assert.True(t, entries[0].QuantityBefore.Equal(dec("100")))
	assert.True(t, entries[0].QuantityAfter.Equal(dec("70")))
	assert.Equal(t, "spillage during grinding", entries[0].Note)
	require.NotNil(t, entries[0].ActorID)
	assert.Equal(t, actor, *entries[0].ActorID)
	assert.Nil(t, entries[0].OrderID)
}

func TestAdjustStockClampsDownwardCorrection(t *testing.T) {
	repo, ledger, svc := newInventoryFixture()
	id := repo.add(model.InventoryItem{Name: "beans", Unit: unit.Gram, Quantity: dec("20")})

	resp, err := svc.AdjustStock(context.Background(), id, uuid.New(), dto.AdjustStockRequest{
		Delta: dec("-50"), Note: "inventory recount",
	})
	require.NoError(t, err)

	// Requested -50, but only 20 were there: applied is -20 and the ledger
	// records the applied amount.
	assert.True(t, resp.Requested.Equal(dec("-50")))
	assert.True(t, resp.Applied.Equal(dec("-20")))
	assert.True(t, resp.NewQuantity.IsZero())

	entries := ledger.byKind(model.LedgerAdjust)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Quantity.Equal(dec("-20")))
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	repo, _, svc := newInventoryFixture()
	id := repo.add(model.InventoryItem{Name: "beans", Unit: unit.Gram, Quantity: dec("20")})

	_, err := svc.AdjustStock(context.Background(), id, uuid.New(), dto.AdjustStockRequest{
		Delta: dec("0"), Note: "noop",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestWriteOffEverything(t *testing.T) {
	repo, ledger, svc := newInventoryFixture()
	id := repo.add(model.InventoryItem{Name: "cream", Unit: unit.Milliliter, Quantity: dec("300")})

	// Quantity zero means "write off all of it".
	resp, err := svc.WriteOff(context.Background(), id, uuid.New(), dto.WriteOffRequest{})
	require.NoError(t, err)
	assert.True(t, resp.NewQuantity.IsZero())

	entries := ledger.byKind(model.LedgerExpired)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Quantity.Equal(dec("-300")))
}

func TestWriteOffPartial(t *testing.T) {
	repo, ledger, svc := newInventoryFixture()
	id := repo.add(model.InventoryItem{Name: "cream", Unit: unit.Milliliter, Quantity: dec("300")})

	resp, err := svc.WriteOff(context.Background(), id, uuid.New(), dto.WriteOffRequest{
		Quantity: dec("100"), Note: "past best-before",
	})
	require.NoError(t, err)
	assert.True(t, resp.NewQuantity.Equal(dec("200")))

	entries := ledger.byKind(model.LedgerExpired)
	require.Len(t, entries, 1)
	assert.Equal(t, "past best-before", entries[0].Note)
}

func TestUpdateConvertsQuantitiesOnUnitChange(t *testing.T) {
	repo, _, svc := newInventoryFixture()
	id := repo.add(model.InventoryItem{
		Name: "flour", Unit: unit.Gram, Quantity: dec("2500"), MinQuantity: dec("500"),
	})

	newUnit := "kg"
	resp, err := svc.Update(context.Background(), id, dto.UpdateInventoryItemRequest{Unit: &newUnit})
	require.NoError(t, err)

	assert.Equal(t, "kg", resp.Unit)
	assert.True(t, resp.Quantity.Equal(dec("2.5")))
	assert.True(t, resp.MinQuantity.Equal(dec("0.5")))
}

func TestUpdateRejectsCrossDimensionUnitChange(t *testing.T) {
	repo, _, svc := newInventoryFixture()
	id := repo.add(model.InventoryItem{Name: "flour", Unit: unit.Gram, Quantity: dec("2500")})

	newUnit := "ml"
	_, err := svc.Update(context.Background(), id, dto.UpdateInventoryItemRequest{Unit: &newUnit})
	require.ErrorIs(t, err, ErrValidation)

	item, _ := repo.FindByID(context.Background(), id)
	assert.Equal(t, unit.Gram, item.Unit)
	assert.True(t, item.Quantity.Equal(dec("2500")))
}

func TestLedgerHistoryNewestFirst(t *testing.T) {
	repo, ledger, svc := newInventoryFixture()
	id := repo.add(model.InventoryItem{Name: "beans", Unit: unit.Gram, Quantity: dec("100")})

	for _, note := range []string{"first", "second", "third"} {
		_, err := svc.AdjustStock(context.Background(), id, uuid.New(), dto.AdjustStockRequest{
			Delta: dec("-10"), Note: note,
		})
		require.NoError(t, err)
	}
	_ = ledger

	history, err := svc.Ledger(context.Background(), id, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Note)
	assert.Equal(t, "first", history[2].Note)
}
