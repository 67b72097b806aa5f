package worker

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/segmentio/kafka-go"
	"party-site/internal/gateway"
	"party-site/internal/models"
	"party-site/internal/queue"
	"party-site/pkg/logger"
)

// Run starts the Kafka consumer: reads RSVP commands and applies them to the
// store through the live gateway. One consumer per process; scale by running
// more replicas (the consumer group shares partitions).
func Run(ctx context.Context, gw gateway.Gateway) {
	brokers := queue.Brokers()
	if len(brokers) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    queue.Topic(),
		GroupID:  "rsvp-workers",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	var processed int64
	logger.Info(ctx, "Kafka consumer started", "topic", queue.Topic())
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err)
			continue
		}
		if err := handleMessage(ctx, gw, msg.Value); err != nil {
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
			// Commit anyway to avoid a poison pill blocking the partition
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
		atomic.AddInt64(&processed, 1)
	}
}

func handleMessage(ctx context.Context, gw gateway.Gateway, payload []byte) error {
	var cmd models.RSVPCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return err
	}
	return gw.InsertRSVP(ctx, models.RSVP{
		ID:         cmd.ID,
		FullName:   cmd.FullName,
		Email:      cmd.Email,
		Attendance: cmd.Attendance,
		CreatedAt:  cmd.RequestedAt,
	})
}
