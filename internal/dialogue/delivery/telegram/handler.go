package telegram

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appliance-support-bot/internal/model"
	pkgLog "appliance-support-bot/pkg/log"
	pkgResponse "appliance-support-bot/pkg/response"
	pkgTelegram "appliance-support-bot/pkg/telegram"
)

const replyGenericError = "Something went wrong while handling your message. Please try again."

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine: the dialogue pipeline (classifier + tracker calls)
// can take longer than Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Telegram retries webhooks; an update we already accepted is dropped.
	if _, dup := h.seen.Get(update.UpdateID); dup {
		pkgResponse.OK(c, map[string]string{"status": "duplicate"})
		return
	}
	h.seen.Add(update.UpdateID, struct{}{})

	if err := h.limiters.Allow(update.Message.Chat.ID); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		pkgResponse.OK(c, map[string]string{"status": "throttled"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on
	// the gin context.
	msg := update.Message

	go func() {
		// Detach from the HTTP request context (cancelled after response)
		// and tag the background work with a trace id.
		bgCtx := pkgLog.WithTraceID(context.Background(), uuid.NewString())
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, replyGenericError)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := msg.Text
	if text == "" {
		return nil
	}

	// Telegram's /start command starts a fresh conversation.
	if text == "/start" {
		text = "reset"
	}

	sc := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
	}
	if sc.Username == "" {
		sc.Username = msg.From.FirstName
	}

	replies, err := h.uc.HandleMessage(ctx, sc, text)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: HandleMessage failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, replyGenericError)
	}

	// Replies render ticket ids in backticks, so they are sent as Markdown.
	for _, reply := range replies {
		if sendErr := h.bot.SendMessageWithMode(msg.Chat.ID, reply, "Markdown"); sendErr != nil {
			h.l.Errorf(ctx, "telegram handler: failed to send reply: %v", sendErr)
			return sendErr
		}
	}
	return nil
}
