package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Subdomain string `json:"subdomain" validate:"omitempty,subdomain"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		input     sampleRequest
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid input",
			input: sampleRequest{Email: "ada@acme.test", Password: "s3cret-pass", Subdomain: "acme-inc"},
		},
		{
			name:      "missing email",
			input:     sampleRequest{Password: "s3cret-pass"},
			wantErr:   true,
			wantField: "email",
		},
		{
			name:      "malformed email",
			input:     sampleRequest{Email: "not-an-email"},
			wantErr:   true,
			wantField: "email",
		},
		{
			name:      "short password",
			input:     sampleRequest{Email: "ada@acme.test", Password: "short"},
			wantErr:   true,
			wantField: "password",
		},
		{
			name:      "uppercase subdomain",
			input:     sampleRequest{Email: "ada@acme.test", Subdomain: "Acme"},
			wantErr:   true,
			wantField: "subdomain",
		},
		{
			name:      "subdomain with trailing hyphen",
			input:     sampleRequest{Email: "ada@acme.test", Subdomain: "acme-"},
			wantErr:   true,
			wantField: "subdomain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Errors, tt.wantField)
		})
	}
}

func TestValidator_ValidateVar(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateVar("acme-inc-042", "subdomain"))
	assert.Error(t, v.ValidateVar("-acme", "subdomain"))
	assert.NoError(t, v.ValidateVar("ada@acme.test", "email"))
	assert.Error(t, v.ValidateVar("nope", "email"))
}
