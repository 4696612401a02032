// Package notify delivers short text notifications (the daily overdue digest).
package notify

import (
	"context"

	"go.uber.org/zap"
)

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier пишет уведомление в лог; используется, когда Telegram не настроен
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, text string) error {
	n.logger.Info("Notification", zap.String("text", text))
	return nil
}
