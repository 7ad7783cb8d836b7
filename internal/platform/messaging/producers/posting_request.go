package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nonprofit-fund-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// PostingReqMessageProducer publishes posting requests from the ledger API
// to the posting topic. Messages are keyed by journal entry ID so posting
// requests for one entry land on the same partition.
type PostingReqMessageProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// Creates a new ledger API producer and ensures topic exists
func NewPostingReqMessageProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*PostingReqMessageProducer, error) {
	if cfg.PostingTopic == "" {
		return nil, fmt.Errorf("kafka posting topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for posting request producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.PostingTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure posting topic %s exists for posting request producer: %w", cfg.PostingTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.PostingTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.PostingTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.PostingTopic, "count", len(messages))
			}
		},
	}

	return &PostingReqMessageProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.PostingTopic,
	}, nil
}

func (p *PostingReqMessageProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for posting request producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message via posting request producer",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s via posting request producer: %w", p.topic, err)
	}

	p.logger.Debug("Published message via posting request producer",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *PostingReqMessageProducer) Close() error {
	p.logger.Info("Closing posting request Kafka message producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close posting request kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
