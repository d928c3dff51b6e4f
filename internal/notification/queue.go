package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeEmailSend = "email:send"

// Notifier hands an event over for delivery. Implementations must not block
// on the mail server.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

func NewEmailTask(ev Event) (*asynq.Task, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, b), nil
}

// Queue enqueues e-mail tasks on Redis; the worker command sends them.
type Queue struct {
	client *asynq.Client
}

func NewQueue(client *asynq.Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) Notify(ctx context.Context, ev Event) error {
	task, err := NewEmailTask(ev)
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	return err
}

var _ Notifier = (*Queue)(nil)
