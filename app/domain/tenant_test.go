package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSubdomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple name",
			input:    "Acme Inc",
			expected: "acme-inc",
		},
		{
			name:     "punctuation collapses to single hyphen",
			input:    "Acme, Inc. (EMEA)",
			expected: "acme-inc-emea",
		},
		{
			name:     "leading and trailing separators trimmed",
			input:    "  --Acme--  ",
			expected: "acme",
		},
		{
			name:     "uppercase lowered",
			input:    "ACME",
			expected: "acme",
		},
		{
			name:     "long name truncated to 30 characters",
			input:    strings.Repeat("a", 40),
			expected: strings.Repeat("a", 30),
		},
		{
			name:     "truncation never leaves a trailing hyphen",
			input:    strings.Repeat("a", 29) + " trailing words",
			expected: strings.Repeat("a", 29),
		},
		{
			name:     "no alphanumeric characters yields empty slug",
			input:    "!!! ***",
			expected: "",
		},
		{
			name:     "digits preserved",
			input:    "Area 51 Labs",
			expected: "area-51-labs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSubdomain(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len(got), maxSubdomainLength)
		})
	}
}

func TestNewTenantRecord(t *testing.T) {
	tests := []struct {
		name       string
		tenantName string
		subdomain  string
		adminEmail string
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "valid tenant",
			tenantName: "Acme Inc",
			subdomain:  "acme-inc",
			adminEmail: "admin@acme.example",
			wantErr:    false,
		},
		{
			name:       "valid tenant with collision suffix",
			tenantName: "Acme Inc",
			subdomain:  "acme-inc-042",
			adminEmail: "admin@acme.example",
			wantErr:    false,
		},
		{
			name:       "empty name",
			tenantName: "   ",
			subdomain:  "acme",
			adminEmail: "admin@acme.example",
			wantErr:    true,
			errMsg:     "tenant name is required",
		},
		{
			name:       "empty subdomain",
			tenantName: "Acme",
			subdomain:  "",
			adminEmail: "admin@acme.example",
			wantErr:    true,
			errMsg:     "subdomain is required",
		},
		{
			name:       "uppercase subdomain rejected",
			tenantName: "Acme",
			subdomain:  "Acme",
			adminEmail: "admin@acme.example",
			wantErr:    true,
			errMsg:     "lowercase",
		},
		{
			name:       "leading hyphen rejected",
			tenantName: "Acme",
			subdomain:  "-acme",
			adminEmail: "admin@acme.example",
			wantErr:    true,
			errMsg:     "lowercase",
		},
		{
			name:       "invalid admin email",
			tenantName: "Acme",
			subdomain:  "acme",
			adminEmail: "not-an-email",
			wantErr:    true,
			errMsg:     "invalid admin email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := NewTenantRecord(tt.tenantName, tt.subdomain, tt.adminEmail)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, tenant)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, tenant)
			assert.NotEqual(t, tenant.ID.String(), "00000000-0000-0000-0000-000000000000")
			assert.Equal(t, tt.subdomain, tenant.Subdomain)
			assert.Equal(t, tt.adminEmail, tenant.AdminEmail)
			assert.False(t, tenant.CreatedAt.IsZero())
		})
	}
}
