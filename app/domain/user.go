package domain

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user within a tenant.
type UserRole string

const (
	// UserRoleAdmin is assigned to the first user of a tenant.
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// UserRecord is one application user row in the relational store.
// AuthIdentityID references the provider identity and is nullable: a nil
// value marks a broken link left behind by a legacy or partially-written row.
type UserRecord struct {
	ID             uuid.UUID  `json:"id"`
	AuthIdentityID *uuid.UUID `json:"auth_identity_id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           UserRole   `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewAdminUser creates the first user of a tenant, linked to the confirmed
// provider identity.
func NewAdminUser(tenantID, identityID uuid.UUID, email, firstName, lastName string) (*UserRecord, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if identityID == uuid.Nil {
		return nil, fmt.Errorf("identity ID is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}

	linked := identityID
	return &UserRecord{
		ID:             uuid.New(),
		AuthIdentityID: &linked,
		TenantID:       tenantID,
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		Role:           UserRoleAdmin,
		CreatedAt:      time.Now(),
	}, nil
}

// IsLinked reports whether the row references a provider identity.
func (u *UserRecord) IsLinked() bool {
	return u.AuthIdentityID != nil
}

// LinkedTo reports whether the row references the given provider identity.
func (u *UserRecord) LinkedTo(identityID uuid.UUID) bool {
	return u.AuthIdentityID != nil && *u.AuthIdentityID == identityID
}

// Summary returns the fields reported for a deleted duplicate row.
func (u *UserRecord) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		AuthIdentityID: u.AuthIdentityID,
		CreatedAt:      u.CreatedAt,
	}
}

// UserSummary identifies a user row in repair reports without repeating the
// full record.
type UserSummary struct {
	ID             uuid.UUID  `json:"id"`
	AuthIdentityID *uuid.UUID `json:"auth_identity_id"`
	CreatedAt      time.Time  `json:"created_at"`
}
