package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"party-site/internal/config"
	"party-site/internal/models"
	"party-site/pkg/logger"
)

// Enabled reports whether Kafka ingestion is configured. When false the RSVP
// flow writes straight through the gateway instead.
func Enabled() bool {
	return len(config.Get().KafkaBrokers) > 0
}

// EnsureTopic creates the RSVP topic with configured partitions (idempotent).
// Call at startup; if it fails (no broker, or topic exists) the app still runs.
func EnsureTopic(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		return
	}
	conn, err := kafka.Dial("tcp", cfg.KafkaBrokers[0])
	if err != nil {
		logger.Debug(ctx, "Kafka dial for topic creation failed", "error", err)
		return
	}
	defer conn.Close()
	controller, err := conn.Controller()
	if err != nil {
		logger.Debug(ctx, "Kafka controller lookup failed", "error", err)
		return
	}
	ctrlConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		logger.Debug(ctx, "Kafka controller dial failed", "error", err)
		return
	}
	defer ctrlConn.Close()
	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.KafkaTopic,
		NumPartitions:     cfg.KafkaPartitions,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Debug(ctx, "Kafka create topic failed (topic may already exist)", "error", err)
		return
	}
	logger.Info(ctx, "Kafka topic ensured", "topic", cfg.KafkaTopic, "partitions", cfg.KafkaPartitions)
}

var (
	writer *kafka.Writer
	wOnce  sync.Once
)

func producer(ctx context.Context) *kafka.Writer {
	wOnce.Do(func() {
		cfg := config.Get()
		if len(cfg.KafkaBrokers) == 0 {
			return
		}
		writer = &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		}
		logger.Info(ctx, "Kafka producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	})
	return writer
}

// Publisher publishes RSVP commands to Kafka. It satisfies
// gateway.RSVPPublisher.
type Publisher struct{}

// NewPublisher warms the producer and returns a Publisher.
func NewPublisher(ctx context.Context) *Publisher {
	producer(ctx)
	return &Publisher{}
}

// PublishRSVP publishes one RSVP command. Synchronous: the submission flow
// reports failure to the user when the broker rejects the write.
func (Publisher) PublishRSVP(ctx context.Context, cmd *models.RSVPCommand) error {
	w := producer(ctx)
	if w == nil {
		return fmt.Errorf("kafka not configured")
	}
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(cmd.ID),
		Value: payload,
	})
}

// Topic returns the RSVP topic name.
func Topic() string {
	return config.Get().KafkaTopic
}

// Brokers returns Kafka broker addresses.
func Brokers() []string {
	return config.Get().KafkaBrokers
}
