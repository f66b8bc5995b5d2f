package model

import "time"

type TemplateStatus string

const (
	TemplateStatusPending TemplateStatus = "pending"
	TemplateStatusAccept  TemplateStatus = "accept"
	TemplateStatusReject  TemplateStatus = "reject"
)

type Template struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Text          string         `json:"text"`
	CompanyID     int64          `json:"company_id"`
	MessageTypeID int64          `json:"message_type_id"`
	Status        TemplateStatus `json:"status"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Dispatchable reports whether messages may be rendered from the template.
func (t *Template) Dispatchable() bool {
	return t.IsActive && t.Status == TemplateStatusAccept
}

type MessageType struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Variables []string `json:"variables,omitempty"`
	IsActive  bool     `json:"is_active"`
}

type TemplateCreateRequest struct {
	Title         string `json:"title"           validate:"required,max=255"`
	Text          string `json:"text"            validate:"required,max=5000"`
	MessageTypeID int64  `json:"message_type_id" validate:"required,gt=0"`
	IsActive      *bool  `json:"is_active"`
}

type TemplateModerateRequest struct {
	Status TemplateStatus `json:"status" validate:"required,oneof=accept reject"`
}

type TemplateActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
