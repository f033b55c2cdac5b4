package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"WaDesk/pkg/dedup"
	"WaDesk/pkg/services"
	"WaDesk/pkg/utills"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// flexTimestamp accepts the Graph timestamp either as a numeric string or a
// bare number; the webhook format has shipped both.
type flexTimestamp int64

func (t *flexTimestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*t = flexTimestamp(v)
	return nil
}

// webhookPayload is the Graph webhook notification, trimmed to the fields
// ingestion needs.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Metadata struct {
					PhoneNumberID string `json:"phone_number_id"`
				} `json:"metadata"`
				Messages []struct {
					ID        string        `json:"id"`
					From      string        `json:"from"`
					Type      string        `json:"type"`
					Timestamp flexTimestamp `json:"timestamp"`
					Text      struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ReceiveWebhook ingests Graph webhook notifications. Only plain text
// messages reach the inbox; everything else is dropped. The response is
// always 200 so Meta stops redelivering, including on decode failures.
func ReceiveWebhook(inbox *services.Inbox, guard *dedup.Guard, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload webhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			logger.Warn("webhook decode failed", zap.Error(err))
			c.Status(http.StatusOK)
			return
		}
		for _, entry := range payload.Entry {
			for _, change := range entry.Changes {
				phoneNumberID := change.Value.Metadata.PhoneNumberID
				for _, m := range change.Value.Messages {
					if m.Type != "text" || m.ID == "" || m.From == "" {
						continue
					}
					if guard.Seen(m.ID) {
						logger.Debug("duplicate webhook delivery dropped", zap.String("id", m.ID))
						continue
					}
					logger.Debug("webhook message",
						zap.String("id", m.ID),
						zap.String("preview", utills.Truncate(m.Text.Body, 48)))
					inbox.Receive(services.IncomingMessage{
						ID:            m.ID,
						From:          m.From,
						Body:          m.Text.Body,
						Timestamp:     int64(m.Timestamp),
						PhoneNumberID: phoneNumberID,
					})
				}
			}
		}
		c.Status(http.StatusOK)
	}
}

// VerifyWebhook answers Meta's subscription handshake: echo hub.challenge
// when the verify token matches, 403 otherwise.
func VerifyWebhook(verifyToken string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")
		challenge := c.Query("hub.challenge")

		if mode == "subscribe" && token == verifyToken {
			logger.Info("webhook verified")
			c.String(http.StatusOK, challenge)
			return
		}
		c.Status(http.StatusForbidden)
	}
}
