package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant/config"
	"restaurant/infrastructure/persistence/mysql/po"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *po.OutboxEventPO {
	return &po.OutboxEventPO{
		ID:          "evt-1",
		AggregateID: "order-1",
		EventType:   "order.status_changed",
		Payload:     `{"to":"READY"}`,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewSaramaConfig(config.KafkaConfig{}))
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "order-1" {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != "restaurant.events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		return nil
	})

	pub := NewPublisherWithProducer(producer, "restaurant.events")
	require.NoError(t, pub.Publish(context.Background(), testEvent()))
	require.NoError(t, pub.Close())
}

func TestPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewSaramaConfig(config.KafkaConfig{}))
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewPublisherWithProducer(producer, "restaurant.events")
	err := pub.Publish(context.Background(), testEvent())

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Contains(t, err.Error(), "order.status_changed")
	require.NoError(t, pub.Close())
}

func TestPublisher_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewSaramaConfig(config.KafkaConfig{}))
	pub := NewPublisherWithProducer(producer, "restaurant.events")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, pub.Publish(ctx, testEvent()), context.Canceled)
	require.NoError(t, pub.Close())
}

func TestNewPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewPublisher(config.KafkaConfig{Topic: "t"})
	assert.Error(t, err)
}

func TestNewSaramaConfig(t *testing.T) {
	sc := NewSaramaConfig(config.KafkaConfig{ClientID: "outbox"})

	assert.True(t, sc.Producer.Return.Successes)
	assert.Equal(t, "outbox", sc.ClientID)
	assert.Equal(t, 5*time.Second, sc.Producer.Timeout)
}
