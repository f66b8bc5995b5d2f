package services

import (
	"context"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/logger"
)

// MessageService serves the recipient's view of their messages.
type MessageService struct {
	messages MessageRepository
}

func NewMessageService(messages MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Get returns a message addressed to the requester. Messages of other users
// are reported as ErrNotFound.
func (s *MessageService) Get(ctx context.Context, requester model.Requester, id int64) (*model.Message, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "find message")
	}
	if msg.To != requester.ID {
		return nil, ErrNotFound
	}
	return msg, nil
}

func (s *MessageService) ListInbox(ctx context.Context, requester model.Requester, f model.InboxFilter) ([]*model.Message, int64, error) {
	return s.messages.ListForRecipient(ctx, requester.ID, f)
}

// UpdateStatus changes status and/or is_read. Only the recipient may do so.
func (s *MessageService) UpdateStatus(ctx context.Context, requester model.Requester, id int64, u model.MessageUpdate) error {
	if u.Empty() {
		return ErrUnprocessableFields
	}
	if u.Status != nil {
		switch *u.Status {
		case model.MessageStatusSent, model.MessageStatusReceived, model.MessageStatusFailed:
		default:
			return ErrUnprocessableFields
		}
	}

	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "find message")
	}
	if msg.To != requester.ID {
		return ErrForbidden
	}

	if err := s.messages.UpdateFields(ctx, id, u); err != nil {
		return notFound(err, "update message")
	}
	logger.Info("[message] updated by recipient", "message_id", id, "user_id", requester.ID)
	return nil
}
