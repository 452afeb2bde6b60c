// Package kafka 把 outbox 事件投递到 Kafka
package kafka

import (
	"context"
	"fmt"
	"time"

	"restaurant/config"
	"restaurant/infrastructure/persistence/mysql/po"
	"restaurant/pkg/logger"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Publisher 同步生产者，实现 mysql.OutboxPublisher
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaConfig 同步发送需要 Return.Successes
func NewSaramaConfig(cfg config.KafkaConfig) *sarama.Config {
	sc := sarama.NewConfig()
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	sc.Producer.Timeout = timeout
	return sc
}

func NewPublisher(cfg config.KafkaConfig) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers must not be empty")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewPublisherWithProducer(producer, cfg.Topic), nil
}

// NewPublisherWithProducer 测试中传入 sarama/mocks 的生产者
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// Publish 以聚合 ID 作为消息键，保证同一聚合的事件落在同一分区
func (p *Publisher) Publish(ctx context.Context, event *po.OutboxEventPO) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AggregateID),
		Value: sarama.StringEncoder(event.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.ID)},
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
		},
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send %s to topic %s: %w", event.EventType, p.topic, err)
	}

	logger.FromContext(ctx).Debug("Outbox event sent to kafka",
		zap.String("event_id", event.ID),
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
