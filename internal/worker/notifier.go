package worker

import (
	"context"

	"go-event-hub/internal/model"
	"go-event-hub/pkg/logger"

	"go.uber.org/zap"
)

// Notifier 寄送報名確認
type Notifier interface {
	NotifyRegistration(ctx context.Context, confirmation *model.RegistrationConfirmation) error
}

// LogNotifier 只寫 log，不真的寄信
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.WithComponent("notifier")}
}

func (n *LogNotifier) NotifyRegistration(ctx context.Context, c *model.RegistrationConfirmation) error {
	n.log.Info("registration confirmation sent",
		zap.String("request_id", c.RequestID),
		zap.String("event_id", c.EventID),
		zap.String("event_title", c.EventTitle),
		zap.String("to", c.AttendeeEmail),
	)
	return nil
}
