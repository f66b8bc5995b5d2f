package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nimasrn/notification-gateway/internal/model"
)

const placeholderOpen = "{{"

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// TemplateEngine renders company templates into message text.
type TemplateEngine struct {
	templates TemplateRepository
}

func NewTemplateEngine(templates TemplateRepository) *TemplateEngine {
	return &TemplateEngine{templates: templates}
}

// Render resolves the template for companyID and substitutes vars into it.
// A template of another company is reported as ErrNotFound.
func (e *TemplateEngine) Render(ctx context.Context, templateID, companyID int64, vars model.Variables) (string, error) {
	tpl, err := e.templates.FindByID(ctx, templateID)
	if err != nil {
		return "", notFound(err, "find template")
	}
	if tpl.CompanyID != companyID {
		return "", ErrNotFound
	}
	if !tpl.Dispatchable() {
		return "", ErrTemplateNotActive
	}
	return Substitute(tpl.Text, vars)
}

// Substitute replaces every {{key}} of text with its value. It either
// resolves every placeholder or returns an error without output:
//   - a body with placeholders needs at least one variable
//   - every variable must have a placeholder in the body
//   - every placeholder in the body must have a variable
//
// Values are inserted literally and never rescanned; when placeholders
// overlap, the variable sent first wins.
func Substitute(text string, vars model.Variables) (string, error) {
	hasPlaceholders := strings.Contains(text, placeholderOpen)
	if !hasPlaceholders && len(vars) == 0 {
		return text, nil
	}
	if hasPlaceholders && len(vars) == 0 {
		return "", ErrMissingVariables
	}

	pairs := make([]string, 0, len(vars)*2)
	for _, v := range vars {
		token := placeholderOpen + v.Key + "}}"
		if !strings.Contains(text, token) {
			return "", fmt.Errorf("%w: %q", ErrInvalidVariables, v.Key)
		}
		pairs = append(pairs, token, v.Value)
	}

	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := vars.Get(m[1]); !ok {
			return "", fmt.Errorf("%w: %q", ErrUnresolvedVariables, m[1])
		}
	}

	return strings.NewReplacer(pairs...).Replace(text), nil
}
