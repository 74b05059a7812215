package domain

import (
	"github.com/google/uuid"
)

// RegistrationState tracks where a registration saga run is. Each run moves
// strictly forward; there is no resumption of a failed run.
type RegistrationState string

const (
	StateIdentityPending    RegistrationState = "identity_pending"
	StateIdentityConfirmed  RegistrationState = "identity_confirmed"
	StateSubdomainAllocated RegistrationState = "subdomain_allocated"
	StateTenantCreated      RegistrationState = "tenant_created"
	StateUserLinked         RegistrationState = "user_linked"
	StateRollingBack        RegistrationState = "rolling_back"
	StateFailed             RegistrationState = "failed"
)

// registrationTransitions enumerates the legal edges of the saga. The only
// terminal success state is StateUserLinked; StateFailed is the terminal
// failure state.
var registrationTransitions = map[RegistrationState][]RegistrationState{
	StateIdentityPending:    {StateIdentityConfirmed, StateFailed},
	StateIdentityConfirmed:  {StateSubdomainAllocated, StateFailed},
	StateSubdomainAllocated: {StateTenantCreated, StateFailed},
	StateTenantCreated:      {StateUserLinked, StateRollingBack},
	StateRollingBack:        {StateFailed},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s RegistrationState) CanTransitionTo(next RegistrationState) bool {
	for _, candidate := range registrationTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the saga has finished, successfully or not.
func (s RegistrationState) IsTerminal() bool {
	return s == StateUserLinked || s == StateFailed
}

// RegistrationRequest carries everything needed to provision an
// organization. Exactly one of IdentityID (identity already created by the
// signup front-end) or Password (identity created server-side through the
// provider admin API) must be set.
type RegistrationRequest struct {
	IdentityID *uuid.UUID
	Email      string
	Password   string
	FirstName  string
	LastName   string
	TenantName string
	Subdomain  string
}

// RegistrationResult is the outcome of a successful saga run.
type RegistrationResult struct {
	Tenant *TenantRecord `json:"tenant"`
	User   *UserRecord   `json:"user"`
	// Subdomain is the effective subdomain, possibly suffixed when the
	// derived slug was already taken.
	Subdomain string `json:"subdomain"`
	// SubdomainSuffixed is true when the caller's derived or requested slug
	// collided and a random suffix was appended.
	SubdomainSuffixed bool `json:"subdomain_suffixed"`
}
