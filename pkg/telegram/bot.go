package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Bot is the Telegram Bot API client used to register the support-bot
// webhook and deliver replies to users.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a Telegram Bot client for the given bot token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// post calls one Bot API method and decodes the generic response wrapper.
func (b *Bot) post(method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/%s", b.apiURL, method)
	resp, err := b.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to call telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode telegram %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}
	return nil
}

// SetWebhook registers the webhook URL with Telegram so message updates are
// pushed to the HTTP server.
func (b *Bot) SetWebhook(webhookURL string) error {
	return b.post("setWebhook", map[string]string{"url": webhookURL})
}

// SendMessage sends a plain text reply to a chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMode(chatID, text, "")
}

// SendMessageWithMode sends a reply with an optional parse mode. Replies that
// carry ticket ids in backticks go out as "Markdown".
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	return b.post("sendMessage", SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
}
