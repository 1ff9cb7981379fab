package email

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/shared"
)

// Notifier - API side chỉ enqueue, worker mới thật sự gửi SMTP
type Notifier interface {
	NotifyWelcome(ctx context.Context, data WelcomeEmailData) error
	NotifyPostPublished(ctx context.Context, data PostPublishedEmailData) error
}

// Enqueuer là phần của *asynq.Client mà notifier cần
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type QueueNotifier struct {
	client Enqueuer
}

func NewQueueNotifier(client Enqueuer) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (n *QueueNotifier) NotifyWelcome(ctx context.Context, data WelcomeEmailData) error {
	return n.enqueue(ctx, shared.TypeSendWelcomeEmail, data)
}

func (n *QueueNotifier) NotifyPostPublished(ctx context.Context, data PostPublishedEmailData) error {
	return n.enqueue(ctx, shared.TypeSendPostPublishedEmail, data)
}

func (n *QueueNotifier) enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data)
	_, err = n.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
