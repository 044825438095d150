package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/domain/models"
	client "github.com/mamadbah2/agritech/pkg/clients/whatsapp"
)

// AlertService pushes stock alerts to a farm manager.
type AlertService struct {
	client    client.Client
	recipient string
	logger    *zap.Logger
}

// NewAlertService wires a new alert service. recipient is the default phone
// number alerts are sent to.
func NewAlertService(c client.Client, recipient string, logger *zap.Logger) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertService{client: c, recipient: recipient, logger: logger}
}

// Send delivers a single alert. An empty recipient falls back to the default.
func (s *AlertService) Send(ctx context.Context, msg models.AlertMessage) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	to := msg.To
	if to == "" {
		to = s.recipient
	}

	id, err := s.client.SendText(ctxWithTimeout, client.TextMessage{
		To:         to,
		Body:       msg.Message,
		PreviewURL: msg.PreviewURL,
	})
	if err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	s.logger.Info("alert sent", zap.String("to", to), zap.String("message_id", id))
	return nil
}

// NotifyShortages sends a low-stock summary when the snapshot has shortages.
// It reports whether a message was sent.
func (s *AlertService) NotifyShortages(ctx context.Context, snap models.DashboardSnapshot) (bool, error) {
	if !snap.HasShortages() {
		return false, nil
	}
	if err := s.Send(ctx, models.AlertMessage{Message: ShortageMessage(snap)}); err != nil {
		return false, err
	}
	return true, nil
}

// ShortageMessage formats the restock alert for a snapshot.
func ShortageMessage(snap models.DashboardSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock alert for %s\n", snap.Date)
	writeList(&b, "Out of stock", snap.OutOfStockItems)
	writeList(&b, "Low stock", snap.LowStockItems)
	writeList(&b, "Marketplace low stock", snap.LowStockProducts)
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", title, strings.Join(names, ", "))
}
