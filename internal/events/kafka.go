package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes order events to a topic through a buffered inbox so
// request handlers never wait on the broker.
type KafkaPublisher struct {
	writer  *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	logger  zerolog.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, 256),
		closeCh: make(chan struct{}),
		logger:  logger.With().Str("component", "events").Logger(),
	}
}

// Start launches the writer loop. It drains the inbox on context
// cancellation so queued events are flushed before shutdown.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case m, ok := <-p.inbox:
				if !ok {
					p.drain()
					return
				}
				p.write(m)
			}
		}
	}()
}

// drain flushes whatever is still buffered and closes the writer. It never
// closes the inbox; only Close does that.
func (p *KafkaPublisher) drain() {
	for {
		select {
		case m, ok := <-p.inbox:
			if !ok {
				p.closeWriter()
				return
			}
			p.write(m)
		default:
			p.closeWriter()
			return
		}
	}
}

func (p *KafkaPublisher) closeWriter() {
	if err := p.writer.Close(); err != nil {
		p.logger.Warn().Err(err).Msg("failed to close kafka writer")
	}
}

func (p *KafkaPublisher) write(m kafka.Message) {
	if err := p.writer.WriteMessages(context.Background(), m); err != nil {
		p.logger.Error().Err(err).Str("key", string(m.Key)).Msg("failed to publish event")
	}
}

// Publish enqueues an event. When the inbox is full the event is dropped
// rather than blocking the caller.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("type", eventType).Msg("failed to encode event payload")
		return
	}

	env, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("type", eventType).Msg("failed to encode event envelope")
		return
	}

	msg := kafka.Message{
		Key:   eventKey(eventType, payload),
		Value: env,
		Time:  time.Now(),
	}

	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn().Str("type", eventType).Msg("event inbox full, dropping event")
	}
}

// eventKey partitions events by order so consumers see each order in sequence.
func eventKey(eventType string, payload any) []byte {
	switch v := payload.(type) {
	case OrderCreated:
		return []byte(strconv.FormatInt(v.OrderID, 10))
	case OrderPaid:
		return []byte(strconv.FormatInt(v.OrderID, 10))
	default:
		return []byte(eventType)
	}
}

// Close stops accepting events and flushes the inbox.
func (p *KafkaPublisher) Close() {
	close(p.inbox)
	<-p.closeCh
}
