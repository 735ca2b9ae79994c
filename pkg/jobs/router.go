package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"insighthub-be/internal/metrics"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/pkg/events"
)

// Router maps task names to handlers. Transports hand it every delivered event
// and ack when Deliver returns nil.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   logger.ILogger
}

func NewRouter(log logger.ILogger) *Router {
	return &Router{
		handlers: make(map[string]Handler),
		logger:   log,
	}
}

func (r *Router) Handle(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Names lists the registered task names.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	return names
}

// Run executes a task synchronously and reports the handler's error as is.
func (r *Router) Run(ctx context.Context, task Task) error {
	r.mu.RLock()
	h, ok := r.handlers[task.Name]
	r.mu.RUnlock()
	if !ok {
		return ErrUnknownTask
	}
	return h(ctx, task.Args)
}

// Deliver runs the task carried by event. It returns an error only when the
// task should be redelivered: malformed events, unknown names and invalid
// arguments are logged and swallowed.
func (r *Router) Deliver(ctx context.Context, event events.Event) error {
	task, err := taskFromEvent(event)
	if err != nil {
		r.logger.Error("JOBS", "Dropping malformed task", map[string]interface{}{
			"task":  event.EventType(),
			"error": err.Error(),
		})
		return nil
	}

	start := time.Now()
	err = r.Run(ctx, task)
	switch {
	case err == nil:
		metrics.CaptureTaskMetrics(task.Name, "success", time.Since(start))
		r.logger.Info("JOBS", "Task completed", map[string]interface{}{
			"task":     task.Name,
			"args":     task.Args,
			"duration": time.Since(start).String(),
		})
		return nil
	case errors.Is(err, ErrUnknownTask), errors.Is(err, ErrInvalidArgs):
		metrics.CaptureTaskMetrics(task.Name, "rejected", time.Since(start))
		r.logger.Error("JOBS", "Dropping task", map[string]interface{}{
			"task":  task.Name,
			"args":  task.Args,
			"error": err.Error(),
		})
		return nil
	default:
		metrics.CaptureTaskMetrics(task.Name, "error", time.Since(start))
		r.logger.Error("JOBS", "Task failed", map[string]interface{}{
			"task":  task.Name,
			"args":  task.Args,
			"error": err.Error(),
		})
		return err
	}
}
