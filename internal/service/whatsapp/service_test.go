package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stoickegs/internal/config"
	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/internal/service/commands"
	client "github.com/mamadbah2/stoickegs/pkg/clients/whatsapp"
)

type fakeClient struct {
	mu   sync.Mutex
	sent []client.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	if f.err != nil {
		return nil, f.err
	}
	return &client.SendTextMessageResponse{}, nil
}

type fakeDispatcher struct {
	reply string
	err   error
	got   []models.Command
}

func (f *fakeDispatcher) HandleCommand(_ context.Context, cmd models.Command, _ string) (string, error) {
	f.got = append(f.got, cmd)
	return f.reply, f.err
}

func payloadWithText(from, body string) models.WebhookPayload {
	var change models.WebhookChange
	change.Value.Messages = []models.InboundMessage{{From: from, ID: "wamid.1", Type: "text", Text: &models.MessageText{Body: body}}}
	return models.WebhookPayload{Entry: []models.WebhookEntry{{Changes: []models.WebhookChange{change}}}}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "verify"}, &fakeClient{}, &fakeDispatcher{}, nil)

	challenge, err := svc.VerifyWebhookToken("subscribe", "verify", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", challenge)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "42")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("unsubscribe", "verify", "42")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("", "", "")
	assert.Error(t, err)
}

func TestHandleWebhookRepliesToSender(t *testing.T) {
	fc := &fakeClient{}
	fd := &fakeDispatcher{reply: "Kegs: 5 total"}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, fc, fd, nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), payloadWithText("15550101", " /stats ")))

	require.Len(t, fd.got, 1)
	assert.Equal(t, models.CommandStats, fd.got[0].Type)
	require.Len(t, fc.sent, 1)
	assert.Equal(t, "15550101", fc.sent[0].To)
	assert.Equal(t, "Kegs: 5 total", fc.sent[0].Body)
}

func TestHandleWebhookErrorReplies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "bad arguments", err: commands.ErrInvalidArguments, want: commands.HelpText},
		{name: "unknown command", err: commands.ErrUnsupportedCommand, want: "Unknown command"},
		{name: "missing keg", err: &models.NotFoundError{Entity: "Keg", ID: "SK1"}, want: "No keg matches"},
		{name: "rule violation", err: models.NewFieldValidationError("ciderType", "Beer type is required for full kegs"), want: "Beer type is required for full kegs"},
		{name: "unexpected", err: errors.New("boom"), want: "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, fc, &fakeDispatcher{err: tt.err}, nil)
			require.NoError(t, svc.HandleWebhook(context.Background(), payloadWithText("1", "/keg SK1")))
			require.Len(t, fc.sent, 1)
			assert.Contains(t, fc.sent[0].Body, tt.want)
		})
	}
}

func TestHandleWebhookSkipsEmptyMessages(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, fc, &fakeDispatcher{}, nil)
	var payload models.WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(`{"object":"whatsapp_business_account","entry":[{"id":"1","changes":[{"field":"messages","value":{
		"messaging_product":"whatsapp",
		"messages":[{"from":"1","id":"wamid.2","type":"image"},{"from":"1","id":"wamid.3","type":"text","text":{"body":"   "}}]
	}}]}]}`), &payload))
	require.Len(t, payload.Messages(), 2)

	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.Empty(t, fc.sent)
}

func TestHandleWebhookReportsSendFailure(t *testing.T) {
	fc := &fakeClient{err: errors.New("network down")}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, fc, &fakeDispatcher{reply: "ok"}, nil)
	assert.Error(t, svc.HandleWebhook(context.Background(), payloadWithText("1", "/stats")))
}

func TestNotify(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{ManagerID: "15559999"}, fc, &fakeDispatcher{}, nil)
	require.NoError(t, svc.Notify(context.Background(), "Keg report"))
	require.Len(t, fc.sent, 1)
	assert.Equal(t, "15559999", fc.sent[0].To)

	unset := NewMetaWhatsAppService(config.WhatsAppConfig{}, fc, &fakeDispatcher{}, nil)
	assert.ErrorIs(t, unset.Notify(context.Background(), "x"), ErrNoManager)
}
