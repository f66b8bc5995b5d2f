package services

import (
	"context"
	"time"

	"github.com/nimasrn/notification-gateway/internal/model"
)

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	MarkPhoneVerified(ctx context.Context, id int64, at time.Time) error
	UpdateRole(ctx context.Context, id int64, role model.Role) error
}

type CompanyRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Company, error)
	FindByOwner(ctx context.Context, owner int64) (*model.Company, error)
	Create(ctx context.Context, company *model.Company) (*model.Company, error)
	FindPlan(ctx context.Context, id int64) (*model.Plan, error)
}

type ApiKeyRepository interface {
	FindActiveByKey(ctx context.Context, key string) (*model.ApiKey, error)
	FindByID(ctx context.Context, id int64) (*model.ApiKey, error)
	Create(ctx context.Context, key *model.ApiKey) (*model.ApiKey, error)
	List(ctx context.Context, companyID int64) ([]*model.ApiKey, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

type TemplateRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Template, error)
	Create(ctx context.Context, t *model.Template) (*model.Template, error)
	UpdateStatus(ctx context.Context, id int64, status model.TemplateStatus) error
	SetActive(ctx context.Context, id int64, active bool) error
	FindMessageType(ctx context.Context, id int64) (*model.MessageType, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) (*model.Message, error)
	FindByID(ctx context.Context, id int64) (*model.Message, error)
	UpdateFields(ctx context.Context, id int64, u model.MessageUpdate) error
	ListForRecipient(ctx context.Context, userID int64, f model.InboxFilter) ([]*model.Message, int64, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error)
	FindByID(ctx context.Context, id int64) (*model.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status model.TicketStatus) error
	List(ctx context.Context, f model.TicketFilter) ([]*model.Ticket, error)
}

// Inviter and CodeSender are implemented by the SMS gateway client.
type Inviter interface {
	SendInvite(ctx context.Context, phone string, companyName string) bool
}

type CodeSender interface {
	SendVerificationCode(ctx context.Context, phone string) (string, bool)
}

// KeyValueStore is the subset of the redis adapter used for codes and locks.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
	DelIfEquals(ctx context.Context, key string, value []byte) (bool, error)
}

type EventPublisher interface {
	PublishDispatched(ctx context.Context, msg *model.Message, invited bool) error
}
