package whatsapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agritech/internal/domain/models"
	client "github.com/mamadbah2/agritech/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.TextMessage
	err  error
}

func (f *fakeClient) SendText(_ context.Context, msg client.TextMessage) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "wamid.test", nil
}

func TestNotifyShortages(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAlertService(fc, "224600000000", nil)

	snap := models.DashboardSnapshot{
		Date:             models.MustParseDate("2024-10-25"),
		LowStockItems:    []string{"Gadget B"},
		OutOfStockItems:  []string{"Tool C"},
		LowStockProducts: []string{"Free Range Eggs"},
	}

	sent, err := svc.NotifyShortages(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, fc.sent, 1)
	assert.Equal(t, "224600000000", fc.sent[0].To)
	assert.Equal(t,
		"Stock alert for 2024-10-25\nOut of stock: Tool C\nLow stock: Gadget B\nMarketplace low stock: Free Range Eggs",
		fc.sent[0].Body)

	sent, err = svc.NotifyShortages(context.Background(), models.DashboardSnapshot{})
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Len(t, fc.sent, 1)
}

func TestSendUsesExplicitRecipientAndWrapsErrors(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAlertService(fc, "default", nil)

	require.NoError(t, svc.Send(context.Background(), models.AlertMessage{To: "other", Message: "hi"}))
	assert.Equal(t, "other", fc.sent[0].To)

	boom := errors.New("boom")
	fc.err = boom
	assert.ErrorIs(t, svc.Send(context.Background(), models.AlertMessage{Message: "hi"}), boom)
}
