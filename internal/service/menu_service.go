package service

import (
	"context"
	"fmt"

	"cafepos/internal/dto"
	"cafepos/internal/model"
	"cafepos/internal/repository"

	"github.com/google/uuid"
)

type MenuService interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.MenuItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func (s *menuService) Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	m := &model.MenuItem{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Active:   true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return menuToResponse(m), nil
}

func (s *menuService) Get(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: menu item", ErrNotFound)
	}
	return menuToResponse(m), nil
}

func (s *menuService) List(ctx context.Context, includeInactive bool) ([]dto.MenuItemResponse, error) {
	items, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *menuToResponse(&items[i]))
	}
	return resp, nil
}

func (s *menuService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: menu item", ErrNotFound)
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		m.Price = *req.Price
	}
	if req.Category != nil {
		m.Category = *req.Category
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return menuToResponse(m), nil
}

// Deactivate soft-deletes the menu item and drops its recipe so the order
// processor can never consume through a retired product.
func (s *menuService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: menu item", ErrNotFound)
	}
	return s.repo.Deactivate(ctx, id)
}

func menuToResponse(m *model.MenuItem) *dto.MenuItemResponse {
	return &dto.MenuItemResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Price:    m.Price,
		Category: m.Category,
		Active:   m.Active,
	}
}
