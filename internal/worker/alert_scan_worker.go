package worker

// alert_scan_worker.go
// Re-evaluates stock alerts after a committed stock mutation. Refreshes the
// shared redis cache so alert polls stay hot, then fans the digest out to the
// configured email recipient and webhook. Notification delivery is
// best-effort with retries; exhausted webhook attempts dead-letter.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cafepos/internal/alerts"
	"cafepos/internal/config"
	"cafepos/internal/dto"
	"cafepos/internal/infra"
	"cafepos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertScanJobPayload is the job envelope sent to QueueAlertScan.
type AlertScanJobPayload struct {
	Trigger string `json:"trigger"`            // "order" | "adjust" | "write_off"
	OrderID string `json:"order_id,omitempty"` // set when Trigger == "order"
}

// AlertScanWorker processes alert scan jobs from QueueAlertScan.
type AlertScanWorker struct {
	inventory repository.InventoryRepository
	rdb       *redis.Client
	mailer    *infra.Mailer
	webhook   *infra.WebhookClient
	cb        *infra.CircuitBreaker
	lookahead time.Duration
	emailTo   string
}

// NewAlertScanWorker wires all dependencies for the scan worker.
func NewAlertScanWorker(
	inventory repository.InventoryRepository,
	rdb *redis.Client,
	mailer *infra.Mailer,
	webhook *infra.WebhookClient,
	cb *infra.CircuitBreaker,
	cfg *config.Config,
) *AlertScanWorker {
	return &AlertScanWorker{
		inventory: inventory,
		rdb:       rdb,
		mailer:    mailer,
		webhook:   webhook,
		cb:        cb,
		lookahead: time.Duration(cfg.AlertLookaheadDays) * 24 * time.Hour,
		emailTo:   cfg.AlertEmailTo,
	}
}

// Process handles a single alert scan job:
//  1. Evaluate alerts from current catalog state
//  2. Refresh the shared redis cache
//  3. Email a digest when anything is flagged
//  4. POST the report to the webhook through the circuit breaker
func (w *AlertScanWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertScanJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_scan: invalid payload")
		return
	}

	items, err := w.inventory.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alert_scan: failed to read catalog")
		return
	}
	report := alerts.Evaluate(items, time.Now(), w.lookahead)

	if err := alerts.WriteCache(ctx, w.rdb, report); err != nil {
		log.Warn().Err(err).Msg("alert_scan: failed to refresh cache")
	}

	if alerts.Empty(report) {
		return
	}

	log.Info().
		Str("trigger", payload.Trigger).
		Int("low_stock", len(report.LowStock)).
		Int("expiring_soon", len(report.ExpiringSoon)).
		Int("expired", len(report.Expired)).
		Msg("alert_scan: alerts active")

	if w.emailTo != "" && w.mailer != nil {
		subject := fmt.Sprintf("Stock alerts: %d low, %d expiring, %d expired",
			len(report.LowStock), len(report.ExpiringSoon), len(report.Expired))
		if err := w.mailer.SendAlertDigest(w.emailTo, subject, digestBody(report)); err != nil {
			log.Error().Err(err).Str("to", w.emailTo).Msg("alert_scan: failed to send digest email")
		}
	}

	if w.webhook != nil && w.webhook.Enabled() {
		w.notifyWebhook(ctx, raw, report)
	}
}

// notifyWebhook posts the report with retries through the circuit breaker.
// Exhausted attempts dead-letter the original job payload.
func (w *AlertScanWorker) notifyWebhook(ctx context.Context, raw json.RawMessage, report dto.AlertReport) {
	const maxAttempts = 3

	err := withRetry(ctx, maxAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.webhook.Notify(ctx, report)
		})
	})
	if err != nil {
		log.Error().Err(err).Msg("alert_scan: webhook delivery failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueAlertScan, "alert_scan", raw, err.Error(), maxAttempts)
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

func digestBody(report dto.AlertReport) string {
	var b strings.Builder
	section := func(title string, items []dto.AlertItem) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for _, it := range items {
			fmt.Fprintf(&b, "  - %s: %s %s (threshold %s", it.Name, it.Quantity, it.Unit, it.MinQuantity)
			if it.ExpiresAt != nil {
				fmt.Fprintf(&b, ", expires %s", *it.ExpiresAt)
			}
			b.WriteString(")\n")
		}
		b.WriteString("\n")
	}
	section("Low stock", report.LowStock)
	section("Expiring soon", report.ExpiringSoon)
	section("Expired", report.Expired)
	return b.String()
}
