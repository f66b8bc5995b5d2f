package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nimasrn/notification-gateway/pkg/redis"
)

const EventMessageDispatched = "message.dispatched"

type QueueConfig struct {
	Name   string
	MaxLen int64
}

// Queue appends events to a redis stream for downstream consumers.
type Queue struct {
	adapter redis.RedisAdapter
	config  QueueConfig
	now     func() time.Time
}

// NewQueue creates a new queue instance
func NewQueue(adapter redis.RedisAdapter, config QueueConfig) (*Queue, error) {
	if config.Name == "" {
		return nil, fmt.Errorf("queue name is required")
	}
	return &Queue{
		adapter: adapter,
		config:  config,
		now:     time.Now,
	}, nil
}

// Publish adds a message to the queue
func (q *Queue) Publish(ctx context.Context, data []byte, metadata map[string]string) (string, error) {
	values := map[string]interface{}{
		"data":      string(data),
		"timestamp": q.now().Unix(),
	}
	for k, v := range metadata {
		values["meta_"+k] = v
	}

	id, err := q.adapter.XAdd(ctx, q.config.Name, q.config.MaxLen, values)
	if err != nil {
		return "", fmt.Errorf("failed to publish message: %w", err)
	}
	return id, nil
}

// PublishJSON publishes a JSON-encoded message
func (q *Queue) PublishJSON(ctx context.Context, data interface{}, metadata map[string]string) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return q.Publish(ctx, jsonData, metadata)
}
