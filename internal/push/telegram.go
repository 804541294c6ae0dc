package push

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

// Telegram sends the report to a chat via a bot. The report HTML happens to
// be the subset Telegram's HTML parse mode accepts (h3 aside, which it
// renders literally), so it is stripped to plain text like Bark.
type Telegram struct {
	bot    *tele.Bot
	chatID int64
}

func NewTelegram(cfg TelegramConfig, timeout time.Duration) (*Telegram, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("push.telegram.token is required for telegram")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("push.telegram.chat_id is required for telegram")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// No poller: this bot only ever sends.
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Client: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Telegram{bot: b, chatID: cfg.ChatID}, nil
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Push(ctx context.Context, title, body string) error {
	_ = ctx // telebot manages its own request deadlines via the HTTP client

	msg := title + "\n\n" + stripForText(body)
	_, err := t.bot.Send(tele.ChatID(t.chatID), msg, &tele.SendOptions{
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
