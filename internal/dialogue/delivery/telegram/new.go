package telegram

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"appliance-support-bot/internal/dialogue"
	pkgLog "appliance-support-bot/pkg/log"
	pkgTelegram "appliance-support-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config tunes webhook hardening.
type Config struct {
	RateLimitPerMin int
	DedupeWindow    time.Duration
}

type handler struct {
	l   pkgLog.Logger
	uc  dialogue.UseCase
	bot *pkgTelegram.Bot

	// seen de-duplicates Telegram webhook retries by update_id.
	seen     *expirable.LRU[int64, struct{}]
	limiters *rateLimiter
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc dialogue.UseCase, bot *pkgTelegram.Bot, cfg Config) Handler {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 60
	}
	if cfg.DedupeWindow <= 0 {
		cfg.DedupeWindow = 5 * time.Minute
	}
	return &handler{
		l:        l,
		uc:       uc,
		bot:      bot,
		seen:     expirable.NewLRU[int64, struct{}](1000, nil, cfg.DedupeWindow),
		limiters: newRateLimiter(cfg.RateLimitPerMin),
	}
}

// rateLimiter is a per-chat token-bucket limiter with auto-cleanup.
type rateLimiter struct {
	limiters *expirable.LRU[int64, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[int64, *rate.Limiter](1000, nil, 5*time.Minute),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (rl *rateLimiter) Allow(chatID int64) error {
	limiter, ok := rl.limiters.Get(chatID)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(chatID, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for chat %d", chatID)
	}
	return nil
}
