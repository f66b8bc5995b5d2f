package model

import "time"

type MessageStatus string

const (
	MessageStatusSent     MessageStatus = "sent"
	MessageStatusReceived MessageStatus = "received"
	MessageStatusFailed   MessageStatus = "failed"
)

// ParseMessageStatus accepts only the known message statuses.
func ParseMessageStatus(s string) (MessageStatus, bool) {
	switch st := MessageStatus(s); st {
	case MessageStatusSent, MessageStatusReceived, MessageStatusFailed:
		return st, true
	}
	return "", false
}

type Platform string

const (
	PlatformApp      Platform = "app"
	PlatformTelegram Platform = "telegram"
)

// ParsePlatform accepts only the platforms a message can be delivered on.
func ParsePlatform(s string) (Platform, bool) {
	switch p := Platform(s); p {
	case PlatformApp, PlatformTelegram:
		return p, true
	}
	return "", false
}

type Message struct {
	ID        int64         `json:"id"`
	Subject   string        `json:"subject"`
	Text      string        `json:"message_text"`
	From      int64         `json:"from"`
	To        int64         `json:"to"`
	Status    MessageStatus `json:"status"`
	Platform  []Platform    `json:"platform"`
	IsRead    bool          `json:"is_read"`
	CreatedAt time.Time     `json:"created_at"`
}

// DispatchRequest is the body of a message submission. Platform is kept as
// raw strings so an unknown platform is reported as such instead of as a
// decode failure.
type DispatchRequest struct {
	Subject    string    `json:"subject"     validate:"required,max=255"`
	TemplateID int64     `json:"template_id" validate:"required,gt=0"`
	Variables  Variables `json:"variables"`
	To         string    `json:"to"          validate:"required,phone"`
	Platform   []string  `json:"platform"    validate:"required,min=1"`
}

type DispatchResult struct {
	MessageID int64
	To        int64
	Invited   bool
}

// MessageUpdate lists the only fields a recipient may change.
type MessageUpdate struct {
	Status *MessageStatus `json:"status"  validate:"omitempty,oneof=sent received failed"`
	IsRead *bool          `json:"is_read"`
}

func (u MessageUpdate) Empty() bool {
	return u.Status == nil && u.IsRead == nil
}

type InboxFilter struct {
	IsRead *bool
	Status *MessageStatus
	Limit  int
	Offset int
}
