package client

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Enqueuer is what services see: hand a task to the delivery queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task) error
}

// Client wraps the asynq client behind Enqueuer. It is constructed in
// main and passed through Deps; there is no package-level instance.
type Client struct {
	client *asynq.Client
}

func New(opts asynq.RedisConnOpt) *Client {
	return &Client{
		client: asynq.NewClient(opts),
	}
}

func (c *Client) Enqueue(ctx context.Context, task *asynq.Task) error {
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s failed: %w", task.Type(), err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
