package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-event-hub/internal/model"
	"go-event-hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey         = "registrations:stream"
	ConsumerGroupName = "confirmation-workers"
	messageField      = "confirmation"
)

// StreamConfig 零值欄位使用預設值
type StreamConfig struct {
	// ClaimIdle 未 ack 超過此時間的確認會被重新領取
	ClaimIdle time.Duration
	// MaxDeliveries 投遞次數達上限即丟棄
	MaxDeliveries int64
	Block         time.Duration
}

func (c StreamConfig) withDefaults() StreamConfig {
	if c.ClaimIdle <= 0 {
		c.ClaimIdle = 5 * time.Second
	}
	if c.MaxDeliveries <= 0 {
		c.MaxDeliveries = 5
	}
	if c.Block <= 0 {
		c.Block = 2 * time.Second
	}
	return c
}

// RedisStreamRegistrationQueue 以 consumer group 消費報名確認
// Nack(true) 的訊息留在 PEL，閒置超過 ClaimIdle 後由同一個消費迴圈領回
type RedisStreamRegistrationQueue struct {
	client   *redis.Client
	consumer string
	cfg      StreamConfig
	log      *zap.Logger
}

func NewRedisStreamRegistrationQueue(ctx context.Context, client *redis.Client, consumerID string, cfg StreamConfig) (RegistrationQueue, error) {
	if consumerID == "" {
		consumerID = uuid.NewString()
	}
	q := &RedisStreamRegistrationQueue{
		client:   client,
		consumer: "worker:" + consumerID,
		cfg:      cfg.withDefaults(),
		log:      logger.WithComponent("mq").With(zap.String("consumer", consumerID)),
	}

	err := client.XGroupCreateMkStream(ctx, StreamKey, ConsumerGroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamRegistrationQueue) Publish(ctx context.Context, confirmation *model.RegistrationConfirmation) error {
	payload, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		Values: map[string]interface{}{messageField: payload},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamRegistrationQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		nextClaim := time.Now().Add(q.cfg.ClaimIdle)
		for ctx.Err() == nil {
			var msgs []redis.XMessage
			if time.Now().After(nextClaim) {
				msgs = q.reclaim(ctx)
				nextClaim = time.Now().Add(q.cfg.ClaimIdle)
			}
			msgs = append(msgs, q.readNew(ctx)...)

			for _, msg := range msgs {
				d, ok := q.decode(ctx, msg)
				if !ok {
					continue
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

// readNew 只讀取從未投遞過的訊息
func (q *RedisStreamRegistrationQueue) readNew(ctx context.Context) []redis.XMessage {
	block := q.cfg.Block
	if block > q.cfg.ClaimIdle {
		block = q.cfg.ClaimIdle
	}
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    ConsumerGroupName,
		Consumer: q.consumer,
		Streams:  []string{StreamKey, ">"},
		Count:    10,
		Block:    block,
	}).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			q.log.Error("read registrations failed", zap.Error(err))
			sleepCtx(ctx, time.Second)
		}
		return nil
	}
	var msgs []redis.XMessage
	for _, s := range streams {
		msgs = append(msgs, s.Messages...)
	}
	return msgs
}

// reclaim 領回閒置過久的 pending 訊息；投遞次數已達上限的直接 ack 丟棄
func (q *RedisStreamRegistrationQueue) reclaim(ctx context.Context) []redis.XMessage {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: StreamKey,
		Group:  ConsumerGroupName,
		Idle:   q.cfg.ClaimIdle,
		Start:  "-",
		End:    "+",
		Count:  10,
	}).Result()
	if err != nil {
		if ctx.Err() == nil {
			q.log.Error("list pending registrations failed", zap.Error(err))
		}
		return nil
	}

	ids := make([]string, 0, len(pending))
	for _, p := range pending {
		if p.RetryCount >= q.cfg.MaxDeliveries {
			q.log.Warn("drop confirmation after max deliveries",
				zap.String("message_id", p.ID),
				zap.Int64("deliveries", p.RetryCount),
			)
			q.ack(ctx, p.ID)
			continue
		}
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	msgs, err := q.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   StreamKey,
		Group:    ConsumerGroupName,
		Consumer: q.consumer,
		MinIdle:  q.cfg.ClaimIdle,
		Messages: ids,
	}).Result()
	if err != nil {
		q.log.Error("claim pending registrations failed", zap.Error(err))
		return nil
	}
	return msgs
}

// decode 無法解析的訊息不會有人能處理，直接 ack
func (q *RedisStreamRegistrationQueue) decode(ctx context.Context, msg redis.XMessage) (Delivery, bool) {
	raw, _ := msg.Values[messageField].(string)
	var confirmation model.RegistrationConfirmation
	if err := json.Unmarshal([]byte(raw), &confirmation); err != nil {
		q.log.Warn("drop malformed confirmation", zap.String("message_id", msg.ID), zap.Error(err))
		q.ack(ctx, msg.ID)
		return Delivery{}, false
	}

	id := msg.ID
	return Delivery{
		Data: &confirmation,
		Ack:  func() { q.ack(ctx, id) },
		Nack: func(requeue bool) {
			if !requeue {
				q.ack(ctx, id)
			}
		},
	}, true
}

func (q *RedisStreamRegistrationQueue) ack(ctx context.Context, id string) {
	if err := q.client.XAck(ctx, StreamKey, ConsumerGroupName, id).Err(); err != nil {
		q.log.Error("ack registration failed", zap.String("message_id", id), zap.Error(err))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
