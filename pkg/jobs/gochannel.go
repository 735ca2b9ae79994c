package jobs

import (
	"context"
	"fmt"
	"sync"

	"insighthub-be/internal/pkg/logger"
	"insighthub-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultMaxAttempts bounds how often the in-process transport retries a failing task.
const DefaultMaxAttempts = 5

// ChannelQueue is the in-process transport: tasks travel over a watermill
// gochannel topic and are consumed in the same process.
type ChannelQueue struct {
	pubSub      *gochannel.GoChannel
	topic       string
	maxAttempts int
	logger      logger.ILogger

	mu       sync.Mutex
	attempts map[string]int
}

func NewChannelQueue(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) *ChannelQueue {
	return &ChannelQueue{
		pubSub:      pubSub,
		topic:       topic,
		maxAttempts: DefaultMaxAttempts,
		logger:      log,
		attempts:    make(map[string]int),
	}
}

func (q *ChannelQueue) Enqueue(ctx context.Context, name string, args ...string) error {
	payload, err := events.Marshal(Task{Name: name, Args: args}.toEvent())
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := q.pubSub.Publish(q.topic, msg); err != nil {
		return fmt.Errorf("publish task %s: %w", name, err)
	}
	return nil
}

// Consume subscribes router to the topic and returns once the subscription is
// live. Messages are handled one at a time until ctx ends.
func (q *ChannelQueue) Consume(ctx context.Context, router *Router) error {
	messages, err := q.pubSub.Subscribe(ctx, q.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			q.processMessage(ctx, router, msg)
		}
	}()

	return nil
}

func (q *ChannelQueue) processMessage(ctx context.Context, router *Router, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		q.logger.Error("JOBS", "Dropping undecodable message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	if err := router.Deliver(ctx, event); err != nil {
		if q.recordFailure(msg.UUID) < q.maxAttempts {
			msg.Nack()
			return
		}
		q.logger.Error("JOBS", "Giving up on task after repeated failures", map[string]interface{}{
			"message_id": msg.UUID,
			"task":       event.EventType(),
			"attempts":   q.maxAttempts,
		})
	}

	q.forget(msg.UUID)
	msg.Ack()
}

func (q *ChannelQueue) recordFailure(id string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.attempts[id]++
	return q.attempts[id]
}

func (q *ChannelQueue) forget(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.attempts, id)
}
