package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/pkg/clients/anthropic"
	client "github.com/mamadbah2/agritech/pkg/clients/whatsapp"
)

// ErrVerification is returned when a webhook subscription check fails.
var ErrVerification = errors.New("webhook verification failed")

// Dispatcher answers a parsed bot command.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) models.WebhookReceipt
	Send(ctx context.Context, msg models.AlertMessage) error
	NotifyShortages(ctx context.Context, snap models.DashboardSnapshot) (bool, error)
}

// BotService answers farm questions sent to the WhatsApp number.
type BotService struct {
	*AlertService
	verifyToken string
	dispatcher  Dispatcher
	translator  anthropic.Translator
	help        string
}

// NewBotService wires the inbound bot on top of an alert service. translator
// may be nil, in which case only /commands are understood.
func NewBotService(alerts *AlertService, verifyToken string, dispatcher Dispatcher, translator anthropic.Translator, help string) *BotService {
	return &BotService{
		AlertService: alerts,
		verifyToken:  verifyToken,
		dispatcher:   dispatcher,
		translator:   translator,
		help:         help,
	}
}

// VerifyWebhookToken validates the callback verification token.
func (s *BotService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", fmt.Errorf("%w: missing mode or verify token", ErrVerification)
	}
	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("%w: unsupported hub.mode %s", ErrVerification, mode)
	}
	if s.verifyToken == "" || verifyToken != s.verifyToken {
		return "", fmt.Errorf("%w: invalid verify token", ErrVerification)
	}
	return challenge, nil
}

// HandleWebhook answers every inbound message of the payload and reports
// what happened to each one. A failing message does not stop the others.
// Statuses are ignored.
func (s *BotService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) models.WebhookReceipt {
	var receipt models.WebhookReceipt

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				receipt.Messages++
				cmd, answered, err := s.handleInboundMessage(ctx, msg)
				switch {
				case err != nil:
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					receipt.Failures = append(receipt.Failures, models.MessageFailure{MessageID: msg.ID, Error: err.Error()})
				case !answered:
					receipt.Skipped++
				default:
					receipt.Answered = append(receipt.Answered, models.AnsweredCommand{
						MessageID: msg.ID,
						From:      msg.From,
						Command:   cmd.Type,
					})
				}
			}
		}
	}

	return receipt
}

// handleInboundMessage replies to msg. answered is false for messages
// without text.
func (s *BotService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) (cmd models.Command, answered bool, err error) {
	text := strings.TrimSpace(msg.TextBody())
	if text == "" {
		s.logger.Debug("skip message without text", zap.String("type", msg.Type), zap.String("message_id", msg.ID))
		return cmd, false, nil
	}

	if !models.IsSlash(text) && s.translator != nil {
		translated, err := s.translator.TranslateToCommand(ctx, text)
		if err != nil {
			s.logger.Warn("command translation failed", zap.Error(err))
		} else {
			text = translated
		}
	}

	cmd = models.ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	reply := s.help
	if cmd.Type != models.CommandUnknown {
		answer, err := s.dispatcher.HandleCommand(ctx, cmd, msg.From)
		if err != nil {
			return cmd, false, fmt.Errorf("handle %s command: %w", cmd.Type, err)
		}
		reply = answer
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.client.SendText(ctxWithTimeout, client.TextMessage{To: msg.From, Body: reply}); err != nil {
		return cmd, false, fmt.Errorf("send reply: %w", err)
	}
	return cmd, true, nil
}
