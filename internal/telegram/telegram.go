// Package telegram is the thin delivery channel: webhook update parsing and
// outbound sends against the Bot API. Everything conversational lives in the
// engine; this package only moves text.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"asuka-bot/pkg/retrylimit"
)

const apiBase = "https://api.telegram.org/bot"

// User is the sender block of an update.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// Chat identifies the conversation. Type is "private" for DMs.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Message is the inbound message payload.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// Update is one webhook delivery.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// ParseUpdate decodes a webhook body.
func ParseUpdate(r io.Reader) (Update, error) {
	var u Update
	if err := json.NewDecoder(r).Decode(&u); err != nil {
		return Update{}, fmt.Errorf("decode update: %w", err)
	}
	return u, nil
}

// Client calls the Bot API with one token.
type Client struct {
	token  string
	client *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:  token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) call(ctx context.Context, method string, payload map[string]interface{}) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+c.token+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 16*1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", method, resp.StatusCode)
	}
	return nil
}

// Send delivers text to a chat, retrying transient failures with the same
// backoff policy generation uses.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	err := retrylimit.Do(ctx, func() error {
		return c.call(ctx, "sendMessage", map[string]interface{}{
			"chat_id": chatID,
			"text":    text,
		})
	}, nil, retrylimit.DefaultConfig())
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("send failed")
		return err
	}
	return nil
}

// Typing shows the typing indicator while a reply is being generated.
// Best effort, failures are ignored.
func (c *Client) Typing(ctx context.Context, chatID int64) {
	if err := c.call(ctx, "sendChatAction", map[string]interface{}{
		"chat_id": chatID,
		"action":  "typing",
	}); err != nil {
		log.Debug().Int64("chat_id", chatID).Err(err).Msg("typing action failed")
	}
}
