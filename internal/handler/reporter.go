package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/HarmoniApp/backend-sub000/internal/config"
	"github.com/HarmoniApp/backend-sub000/internal/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

// runReporter delivers one run's events to the outside world: progress goes
// to a per-run redis channel, the final outcome to the durable notification
// queue. Both are fire-and-forget; delivery failures are logged and dropped
// so they can never affect the search.
type runReporter struct {
	handle              uuid.UUID
	cfg                 *config.Config
	notificationChannel *amqp.Channel
	redisClient         *redis.Client
}

func newRunReporter(handle uuid.UUID, cfg *config.Config, notificationCh *amqp.Channel, rdb *redis.Client) *runReporter {
	return &runReporter{
		handle:              handle,
		cfg:                 cfg,
		notificationChannel: notificationCh,
		redisClient:         rdb,
	}
}

func (rr *runReporter) ReportProgress(event domain.ProgressEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("unable to encode progress event", "handle", rr.handle, "error", err)
		return
	}

	channel := fmt.Sprintf("%s:%s", rr.cfg.Redis.ProgressChannel, rr.handle)
	if err := rr.redisClient.Publish(context.Background(), channel, payload).Err(); err != nil {
		slog.Error("unable to publish progress event", "handle", rr.handle, "error", err)
	}
}

func (rr *runReporter) ReportOutcome(notification domain.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		slog.Error("unable to encode outcome notification", "handle", rr.handle, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(rr.cfg.Notification.PublishTimeout)*time.Second)
	defer cancel()

	err = rr.notificationChannel.PublishWithContext(
		ctx,
		"",
		rr.cfg.Notification.Queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		slog.Error("unable to publish outcome notification", "handle", rr.handle, "error", err)
	}
}
