package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/pkg/logger"
	"github.com/nimasrn/notification-gateway/pkg/prom"
)

type KeyResolver interface {
	Resolve(ctx context.Context, presented string) (*model.Company, error)
}

type Renderer interface {
	Render(ctx context.Context, templateID, companyID int64, vars model.Variables) (string, error)
}

type RecipientProvider interface {
	ResolveOrInvite(ctx context.Context, phone, companyName string) (int64, Outcome, func(), error)
}

// DispatchService turns a submission into a persisted message.
type DispatchService struct {
	keys       KeyResolver
	renderer   Renderer
	recipients RecipientProvider
	messages   MessageRepository
	tx         Transactor
	events     EventPublisher
}

func NewDispatchService(keys KeyResolver, renderer Renderer, recipients RecipientProvider, messages MessageRepository, tx Transactor, events EventPublisher) *DispatchService {
	return &DispatchService{
		keys:       keys,
		renderer:   renderer,
		recipients: recipients,
		messages:   messages,
		tx:         tx,
		events:     events,
	}
}

// Dispatch authorizes apiKey, renders the template and stores a message for
// the user behind req.To. Recipient provisioning and message creation share
// one transaction; nothing is persisted when any step fails.
func (s *DispatchService) Dispatch(ctx context.Context, apiKey string, req model.DispatchRequest) (*model.DispatchResult, error) {
	result, err := s.dispatch(ctx, apiKey, req)
	prom.IncDispatch(dispatchOutcome(err))
	return result, err
}

func (s *DispatchService) dispatch(ctx context.Context, apiKey string, req model.DispatchRequest) (*model.DispatchResult, error) {
	company, err := s.keys.Resolve(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	platforms, err := parsePlatforms(req.Platform)
	if err != nil {
		return nil, err
	}

	text, err := s.renderer.Render(ctx, req.TemplateID, company.ID, req.Variables)
	if err != nil {
		return nil, err
	}

	var (
		msg     *model.Message
		outcome Outcome
		release = noRelease
	)
	// the invite lock outlives the commit of the invited user
	defer func() { release() }()

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		to, o, done, err := s.recipients.ResolveOrInvite(ctx, req.To, company.Name)
		if err != nil {
			return err
		}
		outcome = o
		release = done

		msg, err = s.messages.Create(ctx, &model.Message{
			Subject:  req.Subject,
			Text:     text,
			From:     company.ID,
			To:       to,
			Status:   model.MessageStatusSent,
			Platform: platforms,
		})
		if err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishDispatched(ctx, msg, outcome == OutcomeInvited); err != nil {
			prom.IncEventPublishFailure()
			logger.Error("[dispatch] failed to publish event", "message_id", msg.ID, "error", err)
		}
	}

	logger.Info("[dispatch] message created",
		"message_id", msg.ID,
		"company_id", company.ID,
		"to", msg.To,
		"recipient", outcome.String(),
	)

	return &model.DispatchResult{
		MessageID: msg.ID,
		To:        msg.To,
		Invited:   outcome == OutcomeInvited,
	}, nil
}

// parsePlatforms requires a non-empty subset of the known platforms and
// drops repeated entries.
func parsePlatforms(raw []string) ([]model.Platform, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidPlatform
	}
	out := make([]model.Platform, 0, len(raw))
	seen := make(map[model.Platform]bool, len(raw))
	for _, r := range raw {
		p, ok := model.ParsePlatform(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPlatform, r)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func dispatchOutcome(err error) string {
	switch {
	case err == nil:
		return "sent"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDispatchFailed):
		return "failed"
	case errors.Is(err, ErrTemplateNotActive),
		errors.Is(err, ErrMissingVariables),
		errors.Is(err, ErrInvalidVariables),
		errors.Is(err, ErrInvalidPlatform):
		return "unprocessable"
	default:
		return "error"
	}
}
