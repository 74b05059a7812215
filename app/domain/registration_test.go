package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    RegistrationState
		to      RegistrationState
		allowed bool
	}{
		{"identity confirm", StateIdentityPending, StateIdentityConfirmed, true},
		{"identity failure", StateIdentityPending, StateFailed, true},
		{"allocation", StateIdentityConfirmed, StateSubdomainAllocated, true},
		{"allocator exhausted", StateIdentityConfirmed, StateFailed, true},
		{"tenant insert", StateSubdomainAllocated, StateTenantCreated, true},
		{"linker success", StateTenantCreated, StateUserLinked, true},
		{"linker failure compensates first", StateTenantCreated, StateRollingBack, true},
		{"rollback terminates in failure", StateRollingBack, StateFailed, true},

		{"no direct tenant failure without rollback", StateTenantCreated, StateFailed, false},
		{"no skipping allocation", StateIdentityConfirmed, StateTenantCreated, false},
		{"no resumption from failed", StateFailed, StateIdentityPending, false},
		{"no leaving terminal success", StateUserLinked, StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRegistrationState_IsTerminal(t *testing.T) {
	assert.True(t, StateUserLinked.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StateIdentityPending.IsTerminal())
	assert.False(t, StateTenantCreated.IsTerminal())
	assert.False(t, StateRollingBack.IsTerminal())
}
