package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	service "github.com/mamadbah2/stoickegs/internal/service/whatsapp"
	"github.com/mamadbah2/stoickegs/internal/validation"
)

// WebhookHandler is the WhatsApp side door to the keg fleet: staff text
// commands in, status replies and manager alerts go out.
type WebhookHandler struct {
	svc    service.MessagingService
	logger *zap.Logger
}

func NewWebhookHandler(svc service.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, logger: logger}
}

// Verify echoes the hub challenge when the verify token matches, which is how
// the keg bot's webhook gets registered.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	resp, err := h.svc.VerifyWebhookToken(mode, token, challenge)
	if err != nil {
		h.logger.Warn("webhook verification failed", zap.Error(err))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, resp)
}

// Receive runs the /keg, /status, /stats and /overdue commands carried by a
// callback. Replies are sent from the service, the HTTP answer is just 200.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("failed handling keg command callback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to process webhook"})
		return
	}

	c.Status(http.StatusOK)
}

// SendMessage lets the cellar team push a one-off text, e.g. a pickup
// reminder to a customer holding kegs.
func (h *WebhookHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	if err := validation.Struct(req); err != nil {
		respondError(c, h.logger, err, "send message")
		return
	}

	if err := h.svc.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending message to customer", zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Message: "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}
