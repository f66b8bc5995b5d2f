package services

import (
	"context"
	"strings"
	"testing"

	"github.com/nimasrn/notification-gateway/internal/model"
	"github.com/nimasrn/notification-gateway/internal/repository"
	"github.com/nimasrn/notification-gateway/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		vars    model.Variables
		want    string
		wantErr error
	}{
		{
			name: "no placeholders and no variables returns body unchanged",
			text: "Your order has shipped.",
			want: "Your order has shipped.",
		},
		{
			name: "single placeholder",
			text: "Hi {{name}}",
			vars: vars("name", "Sam"),
			want: "Hi Sam",
		},
		{
			name: "every occurrence is replaced",
			text: "{{name}}, {{name}}!",
			vars: vars("name", "Sam"),
			want: "Sam, Sam!",
		},
		{
			name: "values are not rescanned",
			text: "{{a}} and {{b}}",
			vars: vars("a", "{{b}}", "b", "x"),
			want: "{{b}} and x",
		},
		{
			name: "empty value",
			text: "code:{{code}}.",
			vars: vars("code", ""),
			want: "code:.",
		},
		{
			name:    "placeholders without variables",
			text:    "Hi {{name}}",
			wantErr: ErrMissingVariables,
		},
		{
			name:    "variable without placeholder",
			text:    "Hi {{name}}",
			vars:    vars("name", "Sam", "foo", "bar"),
			wantErr: ErrInvalidVariables,
		},
		{
			name:    "variable against a body without placeholders",
			text:    "Hello",
			vars:    vars("foo", "bar"),
			wantErr: ErrInvalidVariables,
		},
		{
			name:    "placeholder left unresolved",
			text:    "Hi {{first}} {{last}}",
			vars:    vars("first", "Sam"),
			wantErr: ErrUnresolvedVariables,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.text, tt.vars)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_UnresolvedIsInvalidVariables(t *testing.T) {
	_, err := Substitute("{{a}} {{b}}", vars("a", "1"))
	assert.ErrorIs(t, err, ErrInvalidVariables)
}

func TestSubstitute_SubstitutedKeysLeaveNoPlaceholder(t *testing.T) {
	text := "Dear {{name}}, your code is {{code}}. Thanks {{name}}."
	v := vars("name", "Ada", "code", "12345")

	got, err := Substitute(text, v)
	require.NoError(t, err)
	for _, kv := range v {
		assert.NotContains(t, got, "{{"+kv.Key+"}}")
		assert.Contains(t, got, kv.Value)
	}
	assert.False(t, strings.Contains(got, "{{"))
}

func TestTemplateEngine_Render(t *testing.T) {
	db := repotest.NewDB(t)
	ctx := context.Background()
	a := repotest.SeedTenant(t, db, "alpha", 1)
	b := repotest.SeedTenant(t, db, "beta", 2)

	engine := NewTemplateEngine(repository.NewTemplateRepository(db))

	accepted := repotest.SeedTemplate(t, db, a.Company.ID, "Hi {{name}}", model.TemplateStatusAccept, true)
	pending := repotest.SeedTemplate(t, db, a.Company.ID, "Hi {{name}}", model.TemplateStatusPending, true)
	inactive := repotest.SeedTemplate(t, db, a.Company.ID, "Hi {{name}}", model.TemplateStatusAccept, false)
	foreign := repotest.SeedTemplate(t, db, b.Company.ID, "Hi {{name}}", model.TemplateStatusAccept, true)

	t.Run("renders owned accepted template", func(t *testing.T) {
		text, err := engine.Render(ctx, accepted.ID, a.Company.ID, vars("name", "Sam"))
		require.NoError(t, err)
		assert.Equal(t, "Hi Sam", text)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := engine.Render(ctx, 9999, a.Company.ID, vars("name", "Sam"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("other company's template looks missing", func(t *testing.T) {
		_, err := engine.Render(ctx, foreign.ID, a.Company.ID, vars("name", "Sam"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("pending template", func(t *testing.T) {
		_, err := engine.Render(ctx, pending.ID, a.Company.ID, vars("name", "Sam"))
		assert.ErrorIs(t, err, ErrTemplateNotActive)
	})

	t.Run("inactive template", func(t *testing.T) {
		_, err := engine.Render(ctx, inactive.ID, a.Company.ID, vars("name", "Sam"))
		assert.ErrorIs(t, err, ErrTemplateNotActive)
	})
}
