package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	"github.com/jhoicas/gametech-stock/internal/application/inventory"
	"github.com/jhoicas/gametech-stock/pkg/logger"
)

// EventMovementRecorded valor del header event-type.
const EventMovementRecorded = "StockMovementRecorded"

const (
	publishAttempts = 3
	publishBackoff  = 100 * time.Millisecond
)

var _ inventory.MovementPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publica los movimientos registrados en un topic, con el código de producto como key.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher crea un SyncProducer idempotente contra brokers.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic, log), nil
}

// NewKafkaPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &KafkaPublisher{producer: producer, topic: topic, log: log}
}

// PublishMovement envía el movimiento como JSON. Reintenta con backoff exponencial.
func (p *KafkaPublisher) PublishMovement(ctx context.Context, mov dto.MovementResponse) error {
	payload, err := json.Marshal(mov)
	if err != nil {
		return fmt.Errorf("serializar movimiento: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(mov.ProductCode),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(EventMovementRecorded)},
			{Key: []byte("event-id"), Value: []byte(mov.ID)},
			{Key: []byte("timestamp"), Value: []byte(mov.Timestamp.UTC().Format(time.RFC3339))},
		},
	}

	var lastErr error
	for attempt := 0; attempt < publishAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("publicación cancelada: %w", err)
		}
		partition, offset, err := p.producer.SendMessage(msg)
		if err == nil {
			p.log.Debug().
				Str("topic", p.topic).
				Int32("partition", partition).
				Int64("offset", offset).
				Str("movement_id", mov.ID).
				Msg("movimiento publicado")
			return nil
		}
		lastErr = err
		p.log.Warn().Err(err).Int("attempt", attempt+1).Str("topic", p.topic).Msg("fallo al publicar, reintentando")

		if attempt < publishAttempts-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("publicación cancelada: %w", ctx.Err())
			case <-time.After(publishBackoff << attempt):
			}
		}
	}
	return fmt.Errorf("publicar movimiento tras %d intentos: %w", publishAttempts, lastErr)
}

// Close cierra el productor.
func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
