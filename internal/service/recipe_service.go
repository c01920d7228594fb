package service

import (
	"context"
	"fmt"

	"cafepos/internal/dto"
	"cafepos/internal/model"
	"cafepos/internal/repository"
	"cafepos/internal/unit"

	"github.com/google/uuid"
)

// RecipeService manages the menu-item → ingredient mapping consumed by the
// order processor. SetRecipe validates dimensions up front so unit mismatches
// at sale time can only come from later stock-unit edits.
type RecipeService interface {
	SetRecipe(ctx context.Context, menuItemID uuid.UUID, req dto.SetRecipeRequest) ([]dto.RecipeLineResponse, error)
	ListRecipe(ctx context.Context, menuItemID uuid.UUID) ([]dto.RecipeLineResponse, error)
	RemoveLine(ctx context.Context, id uuid.UUID) error
}

type recipeService struct {
	recipes   repository.RecipeRepository
	menu      repository.MenuRepository
	inventory repository.InventoryRepository
}

func NewRecipeService(recipes repository.RecipeRepository, menu repository.MenuRepository, inventory repository.InventoryRepository) RecipeService {
	return &recipeService{recipes: recipes, menu: menu, inventory: inventory}
}

// SetRecipe replaces the menu item's whole recipe in one transaction.
// Idempotent: sending the same list twice yields the same rows. An empty
// ingredient list clears the recipe.
func (s *recipeService) SetRecipe(ctx context.Context, menuItemID uuid.UUID, req dto.SetRecipeRequest) ([]dto.RecipeLineResponse, error) {
	if _, err := s.menu.FindByID(ctx, menuItemID); err != nil {
		return nil, fmt.Errorf("%w: menu item", ErrNotFound)
	}

	seen := make(map[uuid.UUID]bool, len(req.Ingredients))
	lines := make([]model.RecipeLine, 0, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		itemID, err := uuid.Parse(ing.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: ingredient %d: invalid inventory_item_id", ErrValidation, i)
		}
		if seen[itemID] {
			return nil, fmt.Errorf("%w: ingredient %d: inventory item listed twice", ErrValidation, i)
		}
		seen[itemID] = true

		if !ing.QtyPerUnit.IsPositive() {
			return nil, fmt.Errorf("%w: ingredient %d: qty_per_unit must be positive", ErrValidation, i)
		}
		lineUnit := unit.Unit(ing.Unit)
		if !unit.Valid(lineUnit) {
			return nil, fmt.Errorf("%w: ingredient %d: unknown unit %q", ErrValidation, i, ing.Unit)
		}

		item, err := s.inventory.FindByID(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("%w: ingredient %d: inventory item %s", ErrNotFound, i, ing.InventoryItemID)
		}
		if !item.Active {
			return nil, fmt.Errorf("%w: ingredient %d: %s is deactivated", ErrValidation, i, item.Name)
		}
		lineDim, _ := unit.DimensionOf(lineUnit)
		itemDim, _ := unit.DimensionOf(item.Unit)
		if lineDim != itemDim {
			return nil, fmt.Errorf("%w: ingredient %d: %s is stocked in %s, recipe unit %s has a different dimension",
				ErrValidation, i, item.Name, item.Unit, lineUnit)
		}

		lines = append(lines, model.RecipeLine{
			MenuItemID:      menuItemID,
			InventoryItemID: itemID,
			QtyPerUnit:      ing.QtyPerUnit,
			Unit:            lineUnit,
		})
	}

	if err := s.recipes.ReplaceAll(ctx, menuItemID, lines); err != nil {
		return nil, err
	}
	return s.ListRecipe(ctx, menuItemID)
}

func (s *recipeService) ListRecipe(ctx context.Context, menuItemID uuid.UUID) ([]dto.RecipeLineResponse, error) {
	if _, err := s.menu.FindByID(ctx, menuItemID); err != nil {
		return nil, fmt.Errorf("%w: menu item", ErrNotFound)
	}
	lines, err := s.recipes.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecipeLineResponse, 0, len(lines))
	for _, line := range lines {
		r := dto.RecipeLineResponse{
			ID:              line.ID.String(),
			MenuItemID:      line.MenuItemID.String(),
			InventoryItemID: line.InventoryItemID.String(),
			QtyPerUnit:      line.QtyPerUnit,
			Unit:            string(line.Unit),
		}
		if line.InventoryItem != nil {
			r.InventoryItemName = line.InventoryItem.Name
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (s *recipeService) RemoveLine(ctx context.Context, id uuid.UUID) error {
	if _, err := s.recipes.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: recipe line", ErrNotFound)
	}
	return s.recipes.Remove(ctx, id)
}
