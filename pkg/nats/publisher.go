package nats

import (
	"context"
	"fmt"
	"time"

	"insighthub-be/internal/pkg/logger"
	"insighthub-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamConfig names the JetStream stream and the subject prefix it captures.
// Events are published on "<Topic>.<event type>".
type StreamConfig struct {
	URL    string
	Stream string
	Topic  string
}

func connect(url string) (*nats.Conn, jetstream.JetStream, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	return nc, js, nil
}

// Publisher sends events to a work-queue stream.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config StreamConfig
}

func NewPublisher(config StreamConfig, log logger.ILogger) (*Publisher, error) {
	nc, js, err := connect(config.URL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      config.Stream,
		Subjects:  []string{config.Topic + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.WorkQueuePolicy,
	})
	if err != nil {
		// The stream may already exist with a compatible config.
		log.Warn("NATS", "Failed to ensure stream", map[string]interface{}{
			"stream": config.Stream,
			"error":  err.Error(),
		})
	}

	return &Publisher{nc: nc, js: js, config: config}, nil
}

func (p *Publisher) Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", p.config.Topic, eventType)
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := events.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.Subject(event.EventType())
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
