package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// NewKafkaProducer создает синхронный идемпотентный producer
func NewKafkaProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V2_8_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create kafka producer: %v", ErrInternal, err)
	}
	return producer, nil
}

// KafkaSink публикует уведомления в топик Kafka
// Ключ сообщения - id бронирования, чтобы уведомления одной брони шли в одну партицию
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
	log      Logger
}

// NewKafkaSink создает sink поверх producer
func NewKafkaSink(producer sarama.SyncProducer, topic string, log Logger) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic, log: log}
}

// Notify публикует уведомление, повторов нет
func (s *KafkaSink) Notify(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	value, err := json.Marshal(FromDomain(n))
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(n.BookingID, 10)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("category"), Value: []byte(n.Category)},
			{Key: []byte("notification_id"), Value: []byte(n.ID.String())},
		},
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("%w: topic=%s: %v", ErrPublish, s.topic, err)
	}

	s.log.Info("Notify: published %s for booking id=%d partition=%d offset=%d", n.Category, n.BookingID, partition, offset)
	return nil
}

// Close закрывает producer
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
