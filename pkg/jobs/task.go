package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"insighthub-be/pkg/events"
)

const (
	TaskProcessWorkspaceSources = "process_workspace_sources"
	TaskProcessSource           = "process_source"
	TaskRunAnalytics            = "run_analytics"
	TaskExtractThemes           = "extract_themes"
	TaskCalculateScorecard      = "calculate_scorecard"
)

var (
	ErrUnknownTask = errors.New("unknown task")
	// ErrInvalidArgs marks a task whose arguments can never succeed; it is not retried.
	ErrInvalidArgs = errors.New("invalid task arguments")
)

// Dispatcher enqueues a named task for a background worker and returns without
// waiting for it to run.
type Dispatcher interface {
	Enqueue(ctx context.Context, name string, args ...string) error
}

// Handler runs one task. Returning an error asks the transport to redeliver,
// unless the error wraps ErrInvalidArgs.
type Handler func(ctx context.Context, args []string) error

// Task is a decoded unit of work.
type Task struct {
	Name string
	Args []string
}

func (t Task) toEvent() events.BaseEvent {
	args := make([]interface{}, len(t.Args))
	for i, a := range t.Args {
		args[i] = a
	}
	return events.BaseEvent{
		Type:       t.Name,
		Data:       map[string]interface{}{"args": args},
		OccurredAt: time.Now(),
	}
}

func taskFromEvent(e events.Event) (Task, error) {
	task := Task{Name: e.EventType()}

	raw, ok := e.Payload()["args"]
	if !ok || raw == nil {
		return task, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return task, fmt.Errorf("%w: args is %T", events.ErrMalformedEvent, raw)
	}
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return task, fmt.Errorf("%w: argument %v is not a string", events.ErrMalformedEvent, v)
		}
		task.Args = append(task.Args, s)
	}
	return task, nil
}

// Arg returns the i-th argument or ErrInvalidArgs.
func Arg(args []string, i int) (string, error) {
	if i >= len(args) || args[i] == "" {
		return "", fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	return args[i], nil
}

// Queue is a transport that can both enqueue and consume tasks.
type Queue interface {
	Dispatcher
	Consume(ctx context.Context, router *Router) error
}
