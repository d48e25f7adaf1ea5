package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/armour_safety/internal/models"
)

const (
	alertQueueKey = "sos_alerts"
)

// QueuePublisher передает задания на отправку через очередь Redis
type QueuePublisher struct {
	redisClient *redis.Client
}

// NewQueuePublisher создает новый QueuePublisher
func NewQueuePublisher(client *redis.Client) *QueuePublisher {
	return &QueuePublisher{
		redisClient: client,
	}
}

// Dispatch публикует задание в очередь Redis
func (p *QueuePublisher) Dispatch(ctx context.Context, job models.AlertJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal alert job: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert job to Redis: %w", err)
	}
	return nil
}
