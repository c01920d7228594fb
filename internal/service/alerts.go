package service

import (
	"context"
	"time"

	"cafepos/internal/alerts"
	"cafepos/internal/config"
	"cafepos/internal/dto"
	"cafepos/internal/repository"

	"github.com/redis/go-redis/v9"
)

// AlertService serves the poll-friendly alert endpoint. Reads go through a
// short-TTL redis cache; the async scan worker refreshes the same key after
// every stock mutation, so polls rarely hit postgres.
type AlertService interface {
	GetAlerts(ctx context.Context) (*dto.AlertReport, error)
}

type alertService struct {
	inventory repository.InventoryRepository
	rdb       *redis.Client
	lookahead time.Duration
}

func NewAlertService(inventory repository.InventoryRepository, rdb *redis.Client, cfg *config.Config) AlertService {
	return &alertService{
		inventory: inventory,
		rdb:       rdb,
		lookahead: time.Duration(cfg.AlertLookaheadDays) * 24 * time.Hour,
	}
}

func (s *alertService) GetAlerts(ctx context.Context) (*dto.AlertReport, error) {
	if s.rdb != nil {
		if report := alerts.ReadCache(ctx, s.rdb); report != nil {
			return report, nil
		}
	}

	items, err := s.inventory.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	report := alerts.Evaluate(items, time.Now(), s.lookahead)

	if s.rdb != nil {
		_ = alerts.WriteCache(ctx, s.rdb, report)
	}
	return &report, nil
}
