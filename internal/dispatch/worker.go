package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/armour_safety/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	popTimeout   = 5 * time.Second
	errorBackoff = 500 * time.Millisecond
)

// Worker забирает задания из очереди Redis и отправляет каждое одной попыткой
type Worker struct {
	redisClient *redis.Client
	sender      Sender
	logger      *logrus.Logger
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, sender Sender, logger *logrus.Logger) *Worker {
	return &Worker{
		redisClient: redisClient,
		sender:      sender,
		logger:      logger,
	}
}

// Start запускает горутину обработки очереди
func (w *Worker) Start(ctx context.Context, handler ResultHandler) {
	w.logger.Info("Starting alert dispatch worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping alert dispatch worker.")
				return
			default:
			}

			// BRPOP с таймаутом, чтобы периодически проверять контекст
			result, err := w.redisClient.BRPop(ctx, popTimeout, alertQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop alert job from Redis")
				time.Sleep(errorBackoff)
				continue
			}

			// result[0] - ключ, result[1] - значение
			if len(result) < 2 {
				continue
			}
			w.process(ctx, result[1], handler)
		}
	}()
}

func (w *Worker) process(ctx context.Context, raw string, handler ResultHandler) {
	var job models.AlertJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal alert job from Redis")
		return
	}

	w.logger.WithFields(logrus.Fields{
		"user_id":    job.Payload.UserID,
		"session_id": job.SessionID,
	}).Debug("Processing alert job...")
	deliver(ctx, w.sender, handler, w.logger, job)
}
