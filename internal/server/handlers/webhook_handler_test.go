package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agritech/internal/domain/models"
	"github.com/mamadbah2/agritech/internal/service/whatsapp"
)

type fakeBot struct {
	payloads []models.WebhookPayload
	alerts   []models.AlertMessage
	snaps    []models.DashboardSnapshot
	receipt  models.WebhookReceipt
	err      error
}

func (f *fakeBot) VerifyWebhookToken(mode, token, challenge string) (string, error) {
	if mode != "subscribe" || token != "verify-me" {
		return "", fmt.Errorf("%w: invalid verify token", whatsapp.ErrVerification)
	}
	return challenge, nil
}

func (f *fakeBot) HandleWebhook(_ context.Context, payload models.WebhookPayload) models.WebhookReceipt {
	f.payloads = append(f.payloads, payload)
	return f.receipt
}

func (f *fakeBot) Send(_ context.Context, msg models.AlertMessage) error {
	f.alerts = append(f.alerts, msg)
	return f.err
}

func (f *fakeBot) NotifyShortages(_ context.Context, snap models.DashboardSnapshot) (bool, error) {
	f.snaps = append(f.snaps, snap)
	if f.err != nil {
		return false, f.err
	}
	return snap.HasShortages(), nil
}

type fakeSnapshotter struct {
	snap models.DashboardSnapshot
}

func (f fakeSnapshotter) BuildSnapshot(_ context.Context, now time.Time) models.DashboardSnapshot {
	snap := f.snap
	snap.Date = models.DateOf(now)
	return snap
}

func webhookEngine(bot *fakeBot, reports Snapshotter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(bot, reports, nil)
	h.now = func() time.Time { return time.Date(2024, 10, 25, 20, 0, 0, 0, time.UTC) }
	r := gin.New()
	r.GET("/webhook", h.Verify)
	r.POST("/webhook", h.Receive)
	r.POST("/alerts", h.SendAlert)
	r.POST("/alerts/shortages", h.NotifyShortages)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWebhookVerify(t *testing.T) {
	r := webhookEngine(&fakeBot{}, nil)

	rec := serve(r, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=1158201444", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1158201444", rec.Body.String())

	rec = serve(r, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid verify token")
}

func TestWebhookReceiveReturnsReceipt(t *testing.T) {
	bot := &fakeBot{receipt: models.WebhookReceipt{
		Messages: 2,
		Answered: []models.AnsweredCommand{{MessageID: "wamid.1", From: "224611111111", Command: models.CommandStock}},
		Failures: []models.MessageFailure{{MessageID: "wamid.2", Error: "send reply: meta down"}},
	}}
	r := webhookEngine(bot, nil)

	body := `{"object":"whatsapp_business_account","entry":[{"id":"1","changes":[{"field":"messages","value":{"messages":[{"from":"224611111111","id":"wamid.1","type":"text","text":{"body":"/stock"}}]}}]}]}`
	rec := serve(r, http.MethodPost, "/webhook", body)
	require.Equal(t, http.StatusOK, rec.Code, "failed messages must not trigger redelivery")
	require.Len(t, bot.payloads, 1)
	assert.Equal(t, "/stock", bot.payloads[0].Entry[0].Changes[0].Value.Messages[0].TextBody())

	var got models.WebhookReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, bot.receipt, got)

	rec = serve(r, http.MethodPost, "/webhook", `{"entry":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, bot.payloads, 1)
}

func TestSendAlert(t *testing.T) {
	bot := &fakeBot{}
	r := webhookEngine(bot, nil)

	rec := serve(r, http.MethodPost, "/alerts", `{"to":"224611111111","message":"Feed delivery delayed"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, bot.alerts, 1)
	assert.Equal(t, "Feed delivery delayed", bot.alerts[0].Message)

	rec = serve(r, http.MethodPost, "/alerts", `{"message":"Irrigation pump restarted"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, bot.alerts[1].To)

	rec = serve(r, http.MethodPost, "/alerts", `{"to":"224611111111"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bot.err = errors.New("meta down")
	rec = serve(r, http.MethodPost, "/alerts", `{"to":"1","message":"x"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNotifyShortages(t *testing.T) {
	bot := &fakeBot{}
	r := webhookEngine(bot, fakeSnapshotter{snap: models.DashboardSnapshot{OutOfStockItems: []string{"Tool C"}}})

	rec := serve(r, http.MethodPost, "/alerts/shortages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Date      string `json:"date"`
		Shortages bool   `json:"shortages"`
		Sent      bool   `json:"sent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-10-25", body.Date)
	assert.True(t, body.Shortages)
	assert.True(t, body.Sent)
	require.Len(t, bot.snaps, 1)
	assert.Equal(t, []string{"Tool C"}, bot.snaps[0].OutOfStockItems)

	bot.err = errors.New("meta down")
	rec = serve(r, http.MethodPost, "/alerts/shortages", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = serve(webhookEngine(&fakeBot{}, nil), http.MethodPost, "/alerts/shortages", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
