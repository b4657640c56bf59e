package port

import (
	"context"
	"time"
)

// Task represents a background job message with a type and opaque payload
// bytes. Payload encoding is up to callers; this port stays free of
// serialization concerns.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. A non-nil error signals retry per adapter policy,
// so handlers must be idempotent.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption controls enqueue behavior. Adapters map supported fields to
// the underlying backend as best-effort. Zero values mean "unspecified".
type EnqueueOption struct {
	Queue     string        // logical queue name
	ProcessIn time.Duration // delay before processing
	ProcessAt time.Time     // absolute schedule time (takes precedence over ProcessIn)
	MaxRetry  int           // max retries for the task
	UniqueTTL time.Duration // enforce uniqueness within TTL window
	Retention time.Duration // keep result metadata for this duration
	Deadline  time.Time     // hard deadline for processing
}

// Client enqueues tasks for background processing.
type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server runs background workers. Run blocks until the context is canceled.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
