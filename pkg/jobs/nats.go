package jobs

import (
	"context"

	natsbus "insighthub-be/pkg/nats"
)

// NATSQueue is the distributed transport: each task is published on
// "<topic>.<task name>" into a JetStream work-queue stream.
type NATSQueue struct {
	publisher  *natsbus.Publisher
	subscriber *natsbus.Subscriber
	topic      string
	durable    string
}

// NewNATSQueue accepts a nil subscriber for processes that only enqueue, and a
// nil publisher for processes that only consume.
func NewNATSQueue(publisher *natsbus.Publisher, subscriber *natsbus.Subscriber, topic, durable string) *NATSQueue {
	return &NATSQueue{
		publisher:  publisher,
		subscriber: subscriber,
		topic:      topic,
		durable:    durable,
	}
}

func (q *NATSQueue) Enqueue(ctx context.Context, name string, args ...string) error {
	return q.publisher.Publish(ctx, Task{Name: name, Args: args}.toEvent())
}

func (q *NATSQueue) Consume(ctx context.Context, router *Router) error {
	return q.subscriber.Subscribe(ctx, q.topic+".>", q.durable, router.Deliver)
}
