package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultGraphBase = "https://graph.facebook.com/v18.0"

// Notifier delivers operator replies outward through the messaging provider.
// Implementations must fail loudly: a non-nil error means the recipient did
// not get the reply.
type Notifier interface {
	SendReply(ctx context.Context, phoneNumberID, to, body, replyToID string) error
}

// GraphClient sends replies through the Meta Graph API messages endpoint.
type GraphClient struct {
	base   string
	token  string
	client *http.Client
	logger *zap.Logger
}

func NewGraphClient(base, token string, logger *zap.Logger) *GraphClient {
	if base == "" {
		base = defaultGraphBase
	}
	return &GraphClient{
		base:  base,
		token: token,
		// client timeout so a hung Graph call cannot hang an operator action
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

type graphText struct {
	Body string `json:"body"`
}

type graphContext struct {
	MessageID string `json:"message_id"`
}

type graphSendRequest struct {
	MessagingProduct string        `json:"messaging_product"`
	To               string        `json:"to"`
	Text             graphText     `json:"text"`
	Context          *graphContext `json:"context,omitempty"`
}

func (c *GraphClient) SendReply(ctx context.Context, phoneNumberID, to, body, replyToID string) error {
	payload := graphSendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             graphText{Body: body},
	}
	if replyToID != "" {
		payload.Context = &graphContext{MessageID: replyToID}
	}
	bodyBytes, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/%s/messages", c.base, phoneNumberID)
	c.logger.Debug("sending reply", zap.String("to", to), zap.String("in_reply_to", replyToID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}
	return nil
}
