package queue

import (
	"context"

	"go-event-hub/internal/model"
)

type Delivery struct {
	Data *model.RegistrationConfirmation
	Ack  func()
	Nack func(requeue bool)
}

type RegistrationQueue interface {
	// 發送報名確認到隊列
	Publish(ctx context.Context, confirmation *model.RegistrationConfirmation) error
	// 訂閱報名確認隊列
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type RegistrationQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.RegistrationConfirmation
}

func NewRegistrationQueue(bufferSize int) RegistrationQueue {
	return &RegistrationQueueImpl{
		ch: make(chan *model.RegistrationConfirmation, bufferSize),
	}
}

// Publish buffer 滿時會等待，直到 ctx 結束
func (q *RegistrationQueueImpl) Publish(ctx context.Context, confirmation *model.RegistrationConfirmation) error {
	select {
	case q.ch <- confirmation:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *RegistrationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case confirmation, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: confirmation,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							// 另開 goroutine，避免 buffer 滿時卡住 worker
							go func() {
								select {
								case q.ch <- confirmation:
								case <-ctx.Done():
								}
							}()
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
