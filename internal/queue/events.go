package queue

import (
	"context"
	"time"

	"github.com/nimasrn/notification-gateway/internal/model"
)

// DispatchedEvent announces a committed message to the delivery workers of
// each platform.
type DispatchedEvent struct {
	ID       int64            `json:"id"`
	From     int64            `json:"from"`
	To       int64            `json:"to"`
	Platform []model.Platform `json:"platform"`
	Invited  bool             `json:"invited"`
	At       time.Time        `json:"at"`
}

func (q *Queue) PublishDispatched(ctx context.Context, msg *model.Message, invited bool) error {
	_, err := q.PublishJSON(ctx, DispatchedEvent{
		ID:       msg.ID,
		From:     msg.From,
		To:       msg.To,
		Platform: msg.Platform,
		Invited:  invited,
		At:       msg.CreatedAt,
	}, map[string]string{"type": EventMessageDispatched})
	return err
}
