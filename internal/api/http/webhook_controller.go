package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appifylab/webinar-platform/internal/domain"
	"github.com/appifylab/webinar-platform/internal/service"
	"github.com/appifylab/webinar-platform/internal/signing"
)

const signatureHeader = "X-Webhook-Signature"

type WebhookController struct {
	webhooks service.WebhookInteractor
	// secret enables payload signature verification when non-empty.
	secret []byte
	log    *slog.Logger
}

func NewWebhookController(webhooks service.WebhookInteractor, secret string, log *slog.Logger) *WebhookController {
	if log == nil {
		log = slog.Default()
	}
	c := &WebhookController{webhooks: webhooks, log: log}
	if secret != "" {
		c.secret = []byte(secret)
	}
	return c
}

func (c *WebhookController) HandleCloudflare(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	if len(c.secret) > 0 {
		if !signing.Verify(body, c.secret, ctx.GetHeader(signatureHeader)) {
			writeError(ctx, http.StatusUnauthorized, "invalid webhook signature", codeInvalidSignature)
			return
		}
	}

	var event domain.Event
	if err := json.Unmarshal(body, &event); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	// Processing failures are logged and swallowed; the upstream service
	// does not redeliver.
	if err := c.webhooks.Process(ctx.Request.Context(), event); err != nil {
		c.log.Error("webhook processing failed", "event", event.Event, "meeting_id", event.MeetingID, "error", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}
