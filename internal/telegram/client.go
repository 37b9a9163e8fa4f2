// Package telegram sends generated reports to a chat via the Telegram Bot API.
// It formats report entries into a MarkdownV2 message and retries delivery
// with a linear backoff.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rewired-gh/nlgen/internal/logger"
	"github.com/rewired-gh/nlgen/internal/models"
	"github.com/rewired-gh/nlgen/internal/nlg"
)

// sender is the part of *tgbotapi.BotAPI the client uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram notifications
type Client struct {
	bot            sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return newClient(bot, chatID, maxRetries, retryDelayBase)
}

func newClient(bot sender, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// Send delivers the report entries under the given heading
func (c *Client) Send(ctx context.Context, heading string, entries []models.Entry) error {
	msg := tgbotapi.NewMessage(c.chatID, formatMessage(heading, entries))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Warn("Telegram send attempt %d/%d failed: %v", i+1, c.maxRetries, err)

		if i == c.maxRetries-1 {
			break
		}
		timer := time.NewTimer(c.retryDelayBase * time.Duration(i+1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("telegram send cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatMessage formats entries into a Telegram message
func formatMessage(heading string, entries []models.Entry) string {
	var b strings.Builder
	b.WriteString("*" + escapeMarkdownV2(heading) + "*\n\n")

	if len(entries) == 0 {
		b.WriteString(escapeMarkdownV2("No observations to report."))
		return b.String()
	}

	for i, entry := range entries {
		fmt.Fprintf(&b, "%d\\. %s %s\n", i+1, directionMarker(entry.Polarity), escapeMarkdownV2(entry.Sentence))
		if entry.Level != nlg.LevelNA {
			detail := fmt.Sprintf("%s (%s → %s, level %s)",
				nlg.FormatGrowth(entry.Growth),
				strconv.FormatFloat(entry.Old, 'f', -1, 64),
				strconv.FormatFloat(entry.New, 'f', -1, 64),
				entry.Level)
			b.WriteString("   _" + escapeMarkdownV2(detail) + "_\n")
		}
	}

	return b.String()
}

func directionMarker(p nlg.Polarity) string {
	switch p {
	case nlg.PolarityPositive:
		return "📈"
	case nlg.PolarityNegative:
		return "📉"
	case nlg.PolarityNeutral:
		return "➖"
	default:
		return "•"
	}
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
