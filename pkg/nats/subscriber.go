package nats

import (
	"context"
	"fmt"

	"insighthub-be/internal/pkg/logger"
	"insighthub-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// DefaultMaxDeliver bounds redelivery of an event whose handler keeps failing.
const DefaultMaxDeliver = 5

// EventHandler processes one event. A returned error asks for redelivery.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber reads events from a durable JetStream consumer with explicit acks.
type Subscriber struct {
	nc       *nats.Conn
	js       jetstream.JetStream
	config   StreamConfig
	logger   logger.ILogger
	consumes []jetstream.ConsumeContext
}

func NewSubscriber(config StreamConfig, log logger.ILogger) (*Subscriber, error) {
	nc, js, err := connect(config.URL)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js, config: config, logger: log}, nil
}

// Subscribe starts delivering events matching subject to handler. The event is
// acked once handler returns nil and nacked otherwise. Bytes that do not decode
// to an event are acked and dropped.
func (s *Subscriber) Subscribe(ctx context.Context, subject string, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.config.Stream, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    DefaultMaxDeliver,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := events.Unmarshal(msg.Data())
		if err != nil {
			s.logger.Error("NATS", "Dropping undecodable event", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err.Error(),
			})
			_ = msg.Ack()
			return
		}

		if err := handler(ctx, event); err != nil {
			s.logger.Warn("NATS", "Handler failed, event will be redelivered", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err.Error(),
			})
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.consumes = append(s.consumes, cc)

	s.logger.Info("NATS", "Subscribed", map[string]interface{}{
		"subject": subject,
		"durable": durableName,
	})
	return nil
}

func (s *Subscriber) Close() {
	for _, cc := range s.consumes {
		cc.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}

// Wait blocks until ctx ends, then stops consuming.
func (s *Subscriber) Wait(ctx context.Context) {
	<-ctx.Done()
	s.Close()
}
