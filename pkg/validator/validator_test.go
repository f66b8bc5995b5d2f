package validator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
	Body  string `json:"body" validate:"omitempty,min=10,max=1000"`
}

func TestValidator_ValidateReturnsValidationError(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "name")
	assert.Contains(t, ve.Errors, "phone")
	assert.NotContains(t, ve.Errors, "body")
}

func TestValidator_Phone(t *testing.T) {
	v := New()

	tests := []struct {
		phone string
		ok    bool
	}{
		{"09121234567", true},
		{"9121234567", false},
		{"0912123456a", false},
		{"091212345678", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.ok, IsPhone(tt.phone))
			err := v.Validate(sampleRequest{Name: "n", Phone: tt.phone})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			fields := Fields(err)
			require.NotNil(t, fields)
			assert.Equal(t, "phone must be an 11 digit phone number", fields["phone"])
		})
	}
}

func TestValidationError_ErrorIsSorted(t *testing.T) {
	ve := &ValidationError{Errors: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, "a: first; b: second", ve.Error())
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, Fields(fmt.Errorf("boom")))
}
