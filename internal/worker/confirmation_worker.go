package worker

import (
	"context"
	"fmt"

	"go-event-hub/internal/queue"
	"go-event-hub/pkg/logger"

	"go.uber.org/zap"
)

type ConfirmationWorker interface {
	// 訂閱報名確認隊列，ctx 結束時停止
	Start(ctx context.Context) error
}

type ConfirmationWorkerImpl struct {
	notifier Notifier
	queue    queue.RegistrationQueue
}

func NewConfirmationWorker(notifier Notifier, queue queue.RegistrationQueue) ConfirmationWorker {
	return &ConfirmationWorkerImpl{
		notifier: notifier,
		queue:    queue,
	}
}

func (w *ConfirmationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe registrations: %w", err)
	}

	log := logger.WithComponent("worker")
	go func() {
		for msg := range msgs {
			if err := w.notifier.NotifyRegistration(ctx, msg.Data); err != nil {
				// 寄送失敗就交回隊列重試
				log.Warn("notify registration failed", zap.String("event_id", msg.Data.EventID), zap.Error(err))
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}
