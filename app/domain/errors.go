package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// The provisioning saga and its repair tools surface a small, closed set of
// typed errors. Internal retries are invisible to callers; once a retry
// budget is exhausted the error carries enough identifying detail (ids,
// email) to drive a support or repair action.

// TransientVisibilityError marks a provider read that failed because the
// identity is not yet visible. It is retried internally and never reaches a
// caller on its own; exhaustion converts it into IdentityNotVisibleError.
type TransientVisibilityError struct {
	IdentityID uuid.UUID
	Cause      error
}

func (e *TransientVisibilityError) Error() string {
	return fmt.Sprintf("identity %s not yet visible: %v", e.IdentityID, e.Cause)
}

func (e *TransientVisibilityError) Unwrap() error { return e.Cause }

// IdentityNotVisibleError is fatal: the identity was created but never
// became readable within the polling budget. No cleanup is attempted here
// because the identity may still converge; the out-of-band recover repair
// handles it if it stays orphaned.
type IdentityNotVisibleError struct {
	IdentityID uuid.UUID
	Attempts   int
}

func (e *IdentityNotVisibleError) Error() string {
	return fmt.Sprintf("identity %s was created but not visible after %d attempts; keep the id for support follow-up", e.IdentityID, e.Attempts)
}

// SubdomainExhaustedError is fatal: every suffixed candidate collided. The
// caller must pick a different organization name.
type SubdomainExhaustedError struct {
	Base     string
	Attempts int
}

func (e *SubdomainExhaustedError) Error() string {
	return fmt.Sprintf("could not allocate a unique subdomain for %q after %d attempts", e.Base, e.Attempts)
}

// SubdomainTakenError is raised by the store when the UNIQUE constraint on
// tenants.subdomain rejects an insert. The saga reacts by re-running the
// allocator; the check-then-insert pre-check alone cannot close this race.
type SubdomainTakenError struct {
	Subdomain string
}

func (e *SubdomainTakenError) Error() string {
	return fmt.Sprintf("subdomain %q is already taken", e.Subdomain)
}

// ForeignKeyRaceError marks a user insert rejected because the identity
// reference was not yet visible to the write path. Retried internally;
// escalates to ProvisioningFailedError on exhaustion.
type ForeignKeyRaceError struct {
	Constraint string
	Cause      error
}

func (e *ForeignKeyRaceError) Error() string {
	return fmt.Sprintf("foreign key race on %s: %v", e.Constraint, e.Cause)
}

func (e *ForeignKeyRaceError) Unwrap() error { return e.Cause }

// ProvisioningFailedError is the terminal saga failure. Transient tells the
// caller whether to retry later (true) or contact support and restart
// registration (false, rollback completed).
type ProvisioningFailedError struct {
	State            RegistrationState
	TenantRolledBack bool
	Transient        bool
	Cause            error
}

func (e *ProvisioningFailedError) Error() string {
	advice := "contact support and restart registration"
	if e.Transient {
		advice = "retry later"
	}
	return fmt.Sprintf("provisioning failed in state %s (tenant rolled back: %t): %v; %s", e.State, e.TenantRolledBack, e.Cause, advice)
}

func (e *ProvisioningFailedError) Unwrap() error { return e.Cause }

// AmbiguousDuplicateError is fatal: several user rows share the email and
// none carries an identity link, so no canonical row can be chosen. Surfaced
// for manual resolution; deduplication never guesses.
type AmbiguousDuplicateError struct {
	Email string
	Count int
}

func (e *AmbiguousDuplicateError) Error() string {
	return fmt.Sprintf("%d user rows for %s and none is linked to an identity; cannot determine which record to keep", e.Count, e.Email)
}

// NoUserRecordError is fatal: the repair target row does not exist. Repairs
// never create rows, since that would mask a provisioning failure.
type NoUserRecordError struct {
	Email string
}

func (e *NoUserRecordError) Error() string {
	return fmt.Sprintf("no user record exists for %s", e.Email)
}

// NoIdentityError is fatal: the provider holds no identity for the email.
type NoIdentityError struct {
	Email string
}

func (e *NoIdentityError) Error() string {
	return fmt.Sprintf("no identity found for %s", e.Email)
}

// StoreUnavailableError is fatal: the relational store connection is not
// configured or not reachable.
type StoreUnavailableError struct {
	Cause error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("relational store unavailable: %v", e.Cause)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Cause }

// IsRetryableVisibility reports whether err should be retried by the
// identity visibility poll.
func IsRetryableVisibility(err error) bool {
	var transient *TransientVisibilityError
	return errors.As(err, &transient)
}

// IsForeignKeyRace reports whether err should be retried by the user
// linker's insert loop.
func IsForeignKeyRace(err error) bool {
	var race *ForeignKeyRaceError
	return errors.As(err, &race)
}

// IsSubdomainTaken reports whether err is the store rejecting a duplicate
// subdomain insert.
func IsSubdomainTaken(err error) bool {
	var taken *SubdomainTakenError
	return errors.As(err, &taken)
}
