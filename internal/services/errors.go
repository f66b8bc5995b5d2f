package services

import (
	"errors"
	"fmt"

	"github.com/nimasrn/notification-gateway/internal/repository"
)

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
	ErrTemplateNotActive      = errors.New("template is not active")
	ErrMissingVariables       = errors.New("variables not found")
	ErrInvalidVariables       = errors.New("invalid variables")
	ErrUnresolvedVariables    = fmt.Errorf("%w: template placeholders without a value", ErrInvalidVariables)
	ErrInvalidPlatform        = errors.New("invalid platform")
	ErrUnprocessableFields    = errors.New("unprocessable fields")
	ErrDispatchFailed         = errors.New("dispatch failed")
	ErrInvalidPhone           = errors.New("phone must be 11 digits")
	ErrVerificationNotSent    = errors.New("verification code not sent")
	ErrWrongCode              = errors.New("wrong or expired verification code")
	ErrAlreadyOwner           = errors.New("user already owns a company")
	ErrPlanUnavailable        = errors.New("plan not found or inactive")
	ErrMessageTypeUnavailable = errors.New("message type not found or inactive")
)

// DispatchError is a failed recipient provisioning. It matches ErrDispatchFailed.
type DispatchError struct {
	Reason string
}

func (e *DispatchError) Error() string {
	return "dispatch failed: " + e.Reason
}

func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatchFailed
}

const (
	ReasonInviteNotSent     = "invite not sent"
	ReasonInviteInProgress  = "invite in progress"
	ReasonRecipientConflict = "recipient conflict"
)

// notFound turns a repository miss into ErrNotFound and wraps anything else.
func notFound(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
