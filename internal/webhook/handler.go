// Package webhook exposes the ManyChat External Request endpoint. The
// reply is returned in the response body; no outbound send is made,
// ManyChat maps $.content.messages[0].text back into the flow.
package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wayacademy/manychat-bot-go/internal/config"
	"github.com/wayacademy/manychat-bot-go/internal/ctxutil"
	"github.com/wayacademy/manychat-bot-go/internal/facts"
	"github.com/wayacademy/manychat-bot-go/internal/logger"
	"github.com/wayacademy/manychat-bot-go/internal/metrics"
	"github.com/wayacademy/manychat-bot-go/internal/ratelimit"
)

// ReplyRateLimited answers subscribers whose bucket is empty.
const ReplyRateLimited = "Түр хүлээгээд дахин бичээрэй. Бид таны асуултад удахгүй хариулах болно."

// Responder produces the reply for one message. Satisfied by bot.Bot.
type Responder interface {
	Respond(ctx context.Context, subscriberID, message string) string
}

// Handler serves the ManyChat webhook.
type Handler struct {
	responder Responder
	limiter   *ratelimit.PerKeyLimiter
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewHandler creates a webhook handler. limiter may be nil to disable
// per-subscriber throttling.
func NewHandler(responder Responder, limiter *ratelimit.PerKeyLimiter, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		responder: responder,
		limiter:   limiter,
		log:       log.WithModule("webhook"),
		metrics:   m,
	}
}

// envelope is the response shape ManyChat's JSONPath mapping expects.
type envelope struct {
	Content content `json:"content"`
}

type content struct {
	Messages []textMessage `json:"messages"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func reply(text string) envelope {
	return envelope{Content: content{Messages: []textMessage{{Type: "text", Text: text}}}}
}

// Handle processes POST /manychat/webhook. Only a malformed JSON body
// yields a non-200 status; every other outcome answers 200 with a
// reply envelope so the ManyChat flow never breaks.
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxWebhookBodyBytes)

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.record("bad_request", start)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	subscriberID, message := extractPayload(payload)
	if len([]rune(message)) > config.MaxInboundMessageRunes {
		message = facts.Truncate(message, config.MaxInboundMessageRunes)
	}

	ctx := ctxutil.WithSubscriberID(c.Request.Context(), subscriberID)
	log := h.log.WithField("subscriber_id", subscriberID)
	log.WithField("message", facts.Truncate(message, 80)).Info("inbound message")

	if h.limiter != nil && subscriberID != "" && !h.limiter.Allow(subscriberID) {
		h.record("rate_limited", start)
		c.JSON(http.StatusOK, reply(ReplyRateLimited))
		return
	}

	answer := h.responder.Respond(ctx, subscriberID, message)

	h.record("ok", start)
	c.JSON(http.StatusOK, reply(answer))
}

func (h *Handler) record(status string, start time.Time) {
	if h.metrics != nil {
		h.metrics.RecordWebhook(status, time.Since(start).Seconds())
	}
}
