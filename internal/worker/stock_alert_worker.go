package worker

// stock_alert_worker.go
// Processes low-stock alert jobs from QueueStockAlerts.
// Notifies the purchasing inbox when a sale drives a product to or below
// its minimum stock level.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/infra"
)

// StockAlertPayload is the job envelope sent to QueueStockAlerts.
type StockAlertPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

// StockAlertWorker sends low-stock notifications via SMTP.
type StockAlertWorker struct {
	mailer  *infra.Mailer
	alertTo string
}

func NewStockAlertWorker(mailer *infra.Mailer, alertTo string) *StockAlertWorker {
	return &StockAlertWorker{mailer: mailer, alertTo: alertTo}
}

// Process sends the alert email. A returned error triggers a retry; jobs that
// keep failing end up in the DLQ.
func (w *StockAlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("stock_alert_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if w.alertTo == "" {
		log.Warn().Str("sku", payload.SKU).Msg("stock_alert_worker: no alert email configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Estoque baixo: %s (%s)", payload.Name, payload.SKU)
	body := fmt.Sprintf(
		"O produto %s (SKU %s) ficou com %d unidade(s) em estoque — mínimo configurado: %d.\n\nReponha o quanto antes.",
		payload.Name, payload.SKU, payload.Stock, payload.MinStock,
	)
	if err := w.mailer.SendAlert(w.alertTo, subject, body); err != nil {
		log.Error().Err(err).Str("sku", payload.SKU).Msg("stock_alert_worker: failed to send alert")
		return err
	}
	log.Info().Str("sku", payload.SKU).Int("stock", payload.Stock).Msg("stock_alert_worker: alert sent")
	return nil
}
