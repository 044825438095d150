package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/whatsapp"
)

// errUpstream marks a failure of the WhatsApp Cloud API.
var errUpstream = errors.New("whatsapp api unavailable")

// Snapshotter builds the farm snapshot a shortage alert is computed from.
type Snapshotter interface {
	BuildSnapshot(ctx context.Context, now time.Time) models.DashboardSnapshot
}

// WebhookHandler serves the WhatsApp bot callbacks and the alert endpoints.
type WebhookHandler struct {
	bot     whatsapp.MessagingService
	reports Snapshotter
	now     func() time.Time
	logger  *zap.Logger
}

// NewWebhookHandler constructs the WhatsApp HTTP adapter. reports may be nil,
// which leaves the shortage alert endpoint answering 404.
func NewWebhookHandler(bot whatsapp.MessagingService, reports Snapshotter, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{bot: bot, reports: reports, now: time.Now, logger: logger}
}

// Verify echoes hub.challenge once the subscription token checks out.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.bot.VerifyWebhookToken(
		c.Query("hub.mode"), c.Query("hub.verify_token"), c.Query("hub.challenge"))
	if err != nil {
		h.logger.Warn("webhook verification failed", zap.Error(err))
		writeError(c, h.logger, err)
		return
	}
	c.String(http.StatusOK, challenge)
}

// Receive answers the bot commands of a delivery. Meta retries any non-2xx
// delivery, so unanswered messages are reported in the body of a 200.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: webhook payload: %v", errInvalidParam, err))
		return
	}

	receipt := h.bot.HandleWebhook(c.Request.Context(), payload)
	if receipt.Failed() {
		h.logger.Warn("some bot commands went unanswered",
			zap.Int("messages", receipt.Messages),
			zap.Int("failures", len(receipt.Failures)))
	}
	c.JSON(http.StatusOK, receipt)
}

// SendAlert pushes a manual notification. Without "to" it goes to the
// configured alert recipient.
func (h *WebhookHandler) SendAlert(c *gin.Context) {
	var req models.AlertMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: alert body: %v", errInvalidParam, err))
		return
	}

	if err := h.bot.Send(c.Request.Context(), req); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", errUpstream, err))
		return
	}
	c.Status(http.StatusAccepted)
}

// NotifyShortages computes today's snapshot and alerts the farm manager when
// anything needs restocking.
func (h *WebhookHandler) NotifyShortages(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reports are not configured"})
		return
	}

	snap := h.reports.BuildSnapshot(c.Request.Context(), h.now())
	sent, err := h.bot.NotifyShortages(c.Request.Context(), snap)
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", errUpstream, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      snap.Date,
		"shortages": snap.HasShortages(),
		"sent":      sent,
	})
}
