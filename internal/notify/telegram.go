package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Лимит Telegram на длину одного сообщения
const maxMessageLen = 4096

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier sends notifications to a single chat.
type TelegramNotifier struct {
	sender messageSender
	chatID string
	logger *zap.Logger
}

func NewTelegramNotifier(token, chatID string, logger *zap.Logger) (*TelegramNotifier, error) {
	// getMe не нужен: бот только отправляет сообщения
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return newTelegramNotifier(b, chatID, logger), nil
}

func newTelegramNotifier(sender messageSender, chatID string, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		sender: sender,
		chatID: chatID,
		logger: logger,
	}
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	for _, part := range split(text, maxMessageLen) {
		msg, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: n.chatID,
			Text:   part,
		})
		if err != nil {
			n.logger.Error("Failed to send telegram message",
				zap.String("chat_id", n.chatID),
				zap.Error(err))
			return fmt.Errorf("send telegram message: %w", err)
		}

		n.logger.Debug("Telegram message sent",
			zap.String("chat_id", n.chatID),
			zap.Int("message_id", msg.ID))
	}
	return nil
}

// split режет текст по строкам так, чтобы каждая часть влезала в limit рун.
// Части из одних пробельных символов пропускаются: Telegram их не принимает.
func split(text string, limit int) []string {
	var parts []string
	add := func(part string) {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}

	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > 0; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		add(string(runes[:cut]))
		runes = runes[cut:]
	}
	add(string(runes))
	return parts
}
