// Package alerts derives low-stock and expiry alert sets from catalog state.
// Evaluation is a pure read: no persisted alert objects, no side effects,
// safe to run at arbitrary polling frequency.
package alerts

import (
	"time"

	"cafepos/internal/dto"
	"cafepos/internal/model"
)

// Evaluate classifies items into low-stock / expiring-soon / expired sets.
// The sets are independent — an item can appear in more than one.
//
// Rules:
//   - expired:      expiry < now
//   - expiringSoon: now <= expiry <= now + lookahead
//   - lowStock:     threshold > 0 && quantity <= threshold
func Evaluate(items []model.InventoryItem, now time.Time, lookahead time.Duration) dto.AlertReport {
	report := dto.AlertReport{
		LowStock:     []dto.AlertItem{},
		ExpiringSoon: []dto.AlertItem{},
		Expired:      []dto.AlertItem{},
		GeneratedAt:  now.UTC().Format(time.RFC3339),
	}
	horizon := now.Add(lookahead)

	for _, item := range items {
		if item.MinQuantity.IsPositive() && item.Quantity.LessThanOrEqual(item.MinQuantity) {
			report.LowStock = append(report.LowStock, toAlertItem(item))
		}
		if item.ExpiresAt == nil {
			continue
		}
		switch {
		case item.ExpiresAt.Before(now):
			report.Expired = append(report.Expired, toAlertItem(item))
		case !item.ExpiresAt.After(horizon):
			report.ExpiringSoon = append(report.ExpiringSoon, toAlertItem(item))
		}
	}
	return report
}

// Empty reports whether the report flags nothing.
func Empty(r dto.AlertReport) bool {
	return len(r.LowStock) == 0 && len(r.ExpiringSoon) == 0 && len(r.Expired) == 0
}

func toAlertItem(item model.InventoryItem) dto.AlertItem {
	a := dto.AlertItem{
		ID:          item.ID.String(),
		Name:        item.Name,
		Unit:        string(item.Unit),
		Quantity:    item.Quantity,
		MinQuantity: item.MinQuantity,
	}
	if item.ExpiresAt != nil {
		s := item.ExpiresAt.Format("2006-01-02")
		a.ExpiresAt = &s
	}
	return a
}
